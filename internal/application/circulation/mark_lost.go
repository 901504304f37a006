package circulation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/notify"
	"github.com/xiebiao/library/pkg/clock"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// MarkLostUseCase 挂失用例
type MarkLostUseCase struct {
	loanRepo  loan.Repository
	bookRepo  book.Repository
	fineRepo  fine.Repository
	notifier  notify.Notifier
	txManager TxManager
	clock     clock.Clock
}

// NewMarkLostUseCase 创建挂失用例
func NewMarkLostUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	fineRepo fine.Repository,
	notifier notify.Notifier,
	txManager TxManager,
	clk clock.Clock,
) *MarkLostUseCase {
	return &MarkLostUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		fineRepo:  fineRepo,
		notifier:  notifier,
		txManager: txManager,
		clock:     clk,
	}
}

// MarkLostRequest 挂失请求DTO
type MarkLostRequest struct {
	LoanID         uint
	ReplacementFee float64 // 赔偿金额,馆员按书价核定
}

// MarkLostResponse 挂失响应DTO
type MarkLostResponse struct {
	LoanID     uint    `json:"loan_id"`
	Barcode    string  `json:"barcode"`
	FineID     uint    `json:"fine_id"`
	FineAmount float64 `json:"fine_amount"`
}

// Execute 执行挂失
//
// 借阅关闭(status=Lost),副本→Lost(终态),开一笔赔偿罚款
// 不做队列交接:书已经不在馆里,没有实体可以留给下一位,
// 队列里的读者继续等其他副本归还
func (uc *MarkLostUseCase) Execute(ctx context.Context, req MarkLostRequest) (*MarkLostResponse, error) {
	if req.ReplacementFee <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "赔偿金额必须大于零")
	}

	var (
		closed *loan.Loan
		f      *fine.Fine
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		l, err := uc.loanRepo.FindByID(txCtx, req.LoanID)
		if err != nil {
			return err
		}

		if err := l.MarkLost(uc.clock.Today()); err != nil {
			return err
		}
		if err := uc.loanRepo.Update(txCtx, l); err != nil {
			return err
		}

		item, err := uc.bookRepo.FindItemByBarcode(txCtx, l.BookItemBarcode)
		if err != nil {
			return err
		}
		if err := item.TransitionTo(book.ItemLost); err != nil {
			return err
		}
		if err := uc.bookRepo.UpdateItem(txCtx, item); err != nil {
			return err
		}

		f = fine.NewFine(l.ID, l.MemberID, req.ReplacementFee, fine.ReasonLostBook)
		if err := uc.fineRepo.Create(txCtx, f); err != nil {
			return err
		}
		if err := uc.notifier.FineAssessed(txCtx, l.MemberID, f.Amount, string(f.Reason)); err != nil {
			return err
		}

		closed = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &MarkLostResponse{
		LoanID:     closed.ID,
		Barcode:    closed.BookItemBarcode,
		FineID:     f.ID,
		FineAmount: f.Amount,
	}, nil
}
