package fine

import (
	"context"

	"github.com/xiebiao/library/internal/domain/fine"
)

// FineItem 罚款列表项
type FineItem struct {
	FineID     uint    `json:"fine_id"`
	LoanID     uint    `json:"loan_id"`
	Amount     float64 `json:"amount"`
	AmountPaid float64 `json:"amount_paid"`
	Remaining  float64 `json:"remaining"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
}

// ListFinesResponse 罚款列表响应
type ListFinesResponse struct {
	Fines       []FineItem `json:"fines"`
	Outstanding float64    `json:"outstanding"` // 未结清总额
}

// ListFinesUseCase 查询读者罚款用例
type ListFinesUseCase struct {
	fineRepo fine.Repository
}

// NewListFinesUseCase 创建查询罚款用例
func NewListFinesUseCase(fineRepo fine.Repository) *ListFinesUseCase {
	return &ListFinesUseCase{fineRepo: fineRepo}
}

// Execute 查询罚款记录,includeSettled为false时只看未结清的
func (uc *ListFinesUseCase) Execute(ctx context.Context, memberID uint, includeSettled bool) (*ListFinesResponse, error) {
	fines, err := uc.fineRepo.ListByMember(ctx, memberID, includeSettled)
	if err != nil {
		return nil, err
	}

	outstanding, err := uc.fineRepo.SumOutstandingByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	items := make([]FineItem, 0, len(fines))
	for _, f := range fines {
		items = append(items, FineItem{
			FineID:     f.ID,
			LoanID:     f.LoanID,
			Amount:     f.Amount,
			AmountPaid: f.AmountPaid,
			Remaining:  f.Remaining(),
			Reason:     string(f.Reason),
			Status:     string(f.Status),
		})
	}

	return &ListFinesResponse{Fines: items, Outstanding: outstanding}, nil
}
