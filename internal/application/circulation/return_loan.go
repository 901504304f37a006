package circulation

import (
	"context"

	"github.com/xiebiao/library/internal/application/reservation"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/notify"
	"github.com/xiebiao/library/pkg/clock"
)

// ReturnLoanUseCase 归还用例
type ReturnLoanUseCase struct {
	loanRepo  loan.Repository
	bookRepo  book.Repository
	fineRepo  fine.Repository
	queue     *reservation.QueueService
	notifier  notify.Notifier
	txManager TxManager
	policy    config.CirculationConfig
	clock     clock.Clock
}

// NewReturnLoanUseCase 创建归还用例
func NewReturnLoanUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	fineRepo fine.Repository,
	queue *reservation.QueueService,
	notifier notify.Notifier,
	txManager TxManager,
	policy config.CirculationConfig,
	clk clock.Clock,
) *ReturnLoanUseCase {
	return &ReturnLoanUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		fineRepo:  fineRepo,
		queue:     queue,
		notifier:  notifier,
		txManager: txManager,
		policy:    policy,
		clock:     clk,
	}
}

// ReturnLoanRequest 归还请求DTO
type ReturnLoanRequest struct {
	ItemBarcode string // 副本条码(馆员扫码)
	Damaged     bool   // 归还时发现损坏
}

// ReturnLoanResponse 归还响应DTO
type ReturnLoanResponse struct {
	LoanID     uint   `json:"loan_id"`
	Barcode    string `json:"barcode"`
	ReturnDate string `json:"return_date"`
	ItemStatus string `json:"item_status"`
	FineID     uint   `json:"fine_id,omitempty"` // 损坏罚款(如有)
}

// Execute 执行归还
//
// 1. 按条码找到Active借阅(没有则报错),关闭:return_date=今天,status=Returned
// 2. 损坏归还:副本→Damaged下架,给读者开一笔定额损坏罚款,不动预约队列
// 3. 正常归还:队首交接——有人排队就留给下一位(副本→Reserved),没人就回架
//
// 归还时不计算逾期罚款:逾期金额由每日扫描持续重算,
// 归还动作不需要知道当下欠多少
func (uc *ReturnLoanUseCase) Execute(ctx context.Context, req ReturnLoanRequest) (*ReturnLoanResponse, error) {
	var (
		closed *loan.Loan
		item   *book.BookItem
		fineID uint
	)

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定副本,归还与借出在同一把锁上互斥
		lockedItem, err := uc.bookRepo.LockItemByBarcode(txCtx, req.ItemBarcode)
		if err != nil {
			return err
		}
		item = lockedItem

		l, err := uc.loanRepo.FindActiveByBarcode(txCtx, req.ItemBarcode)
		if err != nil {
			return err
		}

		if err := l.Close(uc.clock.Today()); err != nil {
			return err
		}
		if err := uc.loanRepo.Update(txCtx, l); err != nil {
			return err
		}
		closed = l

		if req.Damaged {
			// 损坏下架并开定额罚款,预约队列不动
			if err := item.TransitionTo(book.ItemDamaged); err != nil {
				return err
			}
			if err := uc.bookRepo.UpdateItem(txCtx, item); err != nil {
				return err
			}

			f := fine.NewFine(l.ID, l.MemberID, uc.policy.DamageFineAmount, fine.ReasonDamaged)
			if err := uc.fineRepo.Create(txCtx, f); err != nil {
				return err
			}
			fineID = f.ID
			return uc.notifier.FineAssessed(txCtx, l.MemberID, f.Amount, string(f.Reason))
		}

		// 正常归还:交给队列下一位或回架
		return uc.queue.FulfillNextOrRelease(txCtx, item.BookID, item)
	})
	if err != nil {
		return nil, err
	}

	return &ReturnLoanResponse{
		LoanID:     closed.ID,
		Barcode:    closed.BookItemBarcode,
		ReturnDate: closed.ReturnDate.Format("2006-01-02"),
		ItemStatus: string(item.Status),
		FineID:     fineID,
	}, nil
}
