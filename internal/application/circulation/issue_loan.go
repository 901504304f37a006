package circulation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/clock"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// IssueLoanUseCase 借出用例
// 这是流通核心最重要的用例,前置校验按固定顺序执行,
// 每一条失败都返回可区分的业务错误
type IssueLoanUseCase struct {
	loanRepo   loan.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	resRepo    reservation.Repository
	fineRepo   fine.Repository
	txManager  TxManager
	policy     config.CirculationConfig
	clock      clock.Clock
}

// NewIssueLoanUseCase 创建借出用例
func NewIssueLoanUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	memberRepo member.Repository,
	resRepo reservation.Repository,
	fineRepo fine.Repository,
	txManager TxManager,
	policy config.CirculationConfig,
	clk clock.Clock,
) *IssueLoanUseCase {
	return &IssueLoanUseCase{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		resRepo:    resRepo,
		fineRepo:   fineRepo,
		txManager:  txManager,
		policy:     policy,
		clock:      clk,
	}
}

// IssueLoanRequest 借出请求DTO
type IssueLoanRequest struct {
	MemberID    uint   // 读者ID
	ItemBarcode string // 副本条码(馆员扫码)
	PeriodDays  int    // 借期(天),0表示使用默认借期
}

// IssueLoanResponse 借出响应DTO
type IssueLoanResponse struct {
	LoanID    uint   `json:"loan_id"`
	Barcode   string `json:"barcode"`
	MemberID  uint   `json:"member_id"`
	IssueDate string `json:"issue_date"`
	DueDate   string `json:"due_date"`
}

// Execute 执行借出
//
// 前置校验顺序(固定,每条失败返回独立错误):
// 1. 读者存在且Active
// 2. 在借数量 < 上限
// 3. 欠费总额 < 阈值
// 4. 副本存在
// 5. 副本Reserved时:必须是为本人留的书(消费该预约);否则副本必须Available
//
// 效果:创建Active借阅(到期日=今天+借期),副本→Borrowed,全部在一个事务内
func (uc *IssueLoanUseCase) Execute(ctx context.Context, req IssueLoanRequest) (*IssueLoanResponse, error) {
	periodDays := req.PeriodDays
	if periodDays <= 0 {
		periodDays = uc.policy.LoanPeriodDays
	}

	var created *loan.Loan
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 读者存在且账户正常
		m, err := uc.memberRepo.FindMemberByID(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if !m.IsActive() {
			return member.ErrMemberNotActive(m.Status)
		}

		// 2. 在借数量上限
		activeCount, err := uc.loanRepo.CountActiveByMember(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if activeCount >= int64(uc.policy.MaxLoansPerMember) {
			return loan.ErrLoanLimitExceeded(uc.policy.MaxLoansPerMember)
		}

		// 3. 欠费阈值
		outstanding, err := uc.fineRepo.SumOutstandingByMember(txCtx, req.MemberID)
		if err != nil {
			return err
		}
		if outstanding >= uc.policy.MaxFineThreshold {
			return fine.ErrOutstandingFines(outstanding, uc.policy.MaxFineThreshold)
		}

		// 4. 锁定副本
		// SELECT FOR UPDATE:并发借同一副本时,后到的事务在这里等待,
		// 拿到锁后看到的已是Borrowed状态,走校验失败分支
		item, err := uc.bookRepo.LockItemByBarcode(txCtx, req.ItemBarcode)
		if err != nil {
			return err
		}

		// 5. 副本状态校验
		switch item.Status {
		case book.ItemReserved:
			// 这本书是为预约队首的读者留的,只有留书对象本人能借走
			held, err := uc.resRepo.FindFulfilledByBookAndMember(txCtx, item.BookID, req.MemberID)
			if err != nil {
				return err
			}
			if held == nil {
				return apperrors.New(apperrors.ErrCodeReservedForOther,
					"该书已为其他读者保留")
			}
			// 取书,预约完成
			if err := held.Complete(); err != nil {
				return err
			}
			if err := uc.resRepo.Update(txCtx, held); err != nil {
				return err
			}
		case book.ItemAvailable:
			// 在架,直接借
		default:
			return apperrors.Newf(apperrors.ErrCodeItemNotAvailable,
				"副本当前状态为%s,不可借出", item.Status)
		}

		// 创建借阅并流转副本状态
		l := loan.NewLoan(req.ItemBarcode, req.MemberID, uc.clock.Today(), periodDays)
		if err := uc.loanRepo.Create(txCtx, l); err != nil {
			return err
		}
		if err := item.TransitionTo(book.ItemBorrowed); err != nil {
			return err
		}
		if err := uc.bookRepo.UpdateItem(txCtx, item); err != nil {
			return err
		}

		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &IssueLoanResponse{
		LoanID:    created.ID,
		Barcode:   created.BookItemBarcode,
		MemberID:  created.MemberID,
		IssueDate: created.IssueDate.Format("2006-01-02"),
		DueDate:   created.DueDate.Format("2006-01-02"),
	}, nil
}
