package circulation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/clock"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// RenewLoanUseCase 续借用例
type RenewLoanUseCase struct {
	loanRepo   loan.Repository
	bookRepo   book.Repository
	memberRepo member.Repository
	resRepo    reservation.Repository
	txManager  TxManager
	policy     config.CirculationConfig
	clock      clock.Clock
}

// NewRenewLoanUseCase 创建续借用例
func NewRenewLoanUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	memberRepo member.Repository,
	resRepo reservation.Repository,
	txManager TxManager,
	policy config.CirculationConfig,
	clk clock.Clock,
) *RenewLoanUseCase {
	return &RenewLoanUseCase{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		resRepo:    resRepo,
		txManager:  txManager,
		policy:     policy,
		clock:      clk,
	}
}

// RenewLoanRequest 续借请求DTO
type RenewLoanRequest struct {
	LoanID  uint
	ActorID uint // 操作者ID(读者本人或馆员)
	IsStaff bool // 馆员代办
}

// RenewLoanResponse 续借响应DTO
type RenewLoanResponse struct {
	LoanID       uint   `json:"loan_id"`
	DueDate      string `json:"due_date"`
	RenewalCount int    `json:"renewal_count"`
}

// Execute 执行续借
//
// 校验顺序:
// 1. 借阅存在且Active
// 2. 操作者是借阅人本人或馆员
// 3. 未逾期(逾期只能归还,不能续借)
// 4. 读者本人办理时账户须Active(馆员代办不受此限)
// 5. 续借次数未达上限
// 6. 该书目没有Pending预约(不能从排队读者手里续借走)
//
// 成功:到期日顺延一个借期,续借次数+1
func (uc *RenewLoanUseCase) Execute(ctx context.Context, req RenewLoanRequest) (*RenewLoanResponse, error) {
	var renewed *loan.Loan
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		l, err := uc.loanRepo.FindByID(txCtx, req.LoanID)
		if err != nil {
			return err
		}
		if !l.IsActive() {
			return loan.ErrLoanNotActive
		}

		if !req.IsStaff && !l.IsOwnedBy(req.ActorID) {
			return apperrors.ErrForbidden
		}

		if l.IsOverdue(uc.clock.Today()) {
			return loan.ErrOverdueCannotRenew
		}

		// 冻结账户不能自行续借,馆员代办时放行(柜台人工处理的场景)
		if !req.IsStaff {
			m, err := uc.memberRepo.FindMemberByID(txCtx, l.MemberID)
			if err != nil {
				return err
			}
			if !m.IsActive() {
				return member.ErrMemberNotActive(m.Status)
			}
		}

		if l.RenewalCount >= uc.policy.MaxRenewals {
			return loan.ErrRenewalLimitReached(uc.policy.MaxRenewals)
		}

		// 预约是书目级的,先由条码解析出书目再查排队数
		item, err := uc.bookRepo.FindItemByBarcode(txCtx, l.BookItemBarcode)
		if err != nil {
			return err
		}
		pending, err := uc.resRepo.CountPendingByBook(txCtx, item.BookID)
		if err != nil {
			return err
		}
		if pending > 0 {
			return loan.ErrReservedCannotRenew
		}

		l.Renew(uc.policy.LoanPeriodDays)
		if err := uc.loanRepo.Update(txCtx, l); err != nil {
			return err
		}
		renewed = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RenewLoanResponse{
		LoanID:       renewed.ID,
		DueDate:      renewed.DueDate.Format("2006-01-02"),
		RenewalCount: renewed.RenewalCount,
	}, nil
}
