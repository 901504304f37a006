package fine

import (
	"context"

	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
)

// PayFineRequest 缴纳罚款请求(馆员柜台操作)
type PayFineRequest struct {
	FineID uint    `json:"fine_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// PayFineResponse 缴纳罚款响应
type PayFineResponse struct {
	FineID     uint    `json:"fine_id"`
	Amount     float64 `json:"amount"`
	AmountPaid float64 `json:"amount_paid"`
	Remaining  float64 `json:"remaining"`
	Status     string  `json:"status"`
}

// PayFineUseCase 缴纳罚款用例
//
// 业务规则:
// 1. 仅馆员可操作(路由层通过角色中间件保证)
// 2. 罚款对应的借阅必须已闭合:图书在手时不收钱,防止"交钱留书"
// 3. 支持部分缴纳,缴足后状态转为Paid
type PayFineUseCase struct {
	fineRepo  fine.Repository
	loanRepo  loan.Repository
	txManager TxManager
}

// NewPayFineUseCase 创建缴纳罚款用例
func NewPayFineUseCase(
	fineRepo fine.Repository,
	loanRepo loan.Repository,
	txManager TxManager,
) *PayFineUseCase {
	return &PayFineUseCase{
		fineRepo:  fineRepo,
		loanRepo:  loanRepo,
		txManager: txManager,
	}
}

// Execute 执行缴纳
func (uc *PayFineUseCase) Execute(ctx context.Context, req *PayFineRequest) (*PayFineResponse, error) {
	var paid *fine.Fine

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		f, err := uc.fineRepo.FindByID(txCtx, req.FineID)
		if err != nil {
			return err
		}

		// 借阅未闭合时拒收:逾期金额仍在每日增长,先归还再结算
		l, err := uc.loanRepo.FindByID(txCtx, f.LoanID)
		if err != nil {
			return err
		}
		if l.IsActive() {
			return fine.ErrLoanStillOpen(l.BookItemBarcode)
		}

		if err := f.Pay(req.Amount); err != nil {
			return err
		}
		if err := uc.fineRepo.Update(txCtx, f); err != nil {
			return err
		}

		paid = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PayFineResponse{
		FineID:     paid.ID,
		Amount:     paid.Amount,
		AmountPaid: paid.AmountPaid,
		Remaining:  paid.Remaining(),
		Status:     string(paid.Status),
	}, nil
}
