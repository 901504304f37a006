package circulation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/clock"
)

// ListLoansUseCase 借阅查询用例(读者"我的借阅"/馆员按条码查流通历史)
type ListLoansUseCase struct {
	loanRepo loan.Repository
	bookRepo book.Repository
	clock    clock.Clock
}

// NewListLoansUseCase 创建借阅查询用例
func NewListLoansUseCase(loanRepo loan.Repository, bookRepo book.Repository, clk clock.Clock) *ListLoansUseCase {
	return &ListLoansUseCase{
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		clock:    clk,
	}
}

// LoanItem 借阅列表项DTO
type LoanItem struct {
	LoanID       uint   `json:"loan_id"`
	Barcode      string `json:"barcode"`
	BookID       uint   `json:"book_id"`
	BookTitle    string `json:"book_title"`
	IssueDate    string `json:"issue_date"`
	DueDate      string `json:"due_date"`
	ReturnDate   string `json:"return_date,omitempty"`
	RenewalCount int    `json:"renewal_count"`
	Status       string `json:"status"`
	Overdue      bool   `json:"overdue"` // Active且已过期
}

// ByMember 读者的借阅记录
// status为空表示全部,否则按状态过滤(Active/Returned/Lost)
func (uc *ListLoansUseCase) ByMember(ctx context.Context, memberID uint, status string) ([]LoanItem, error) {
	list, err := uc.loanRepo.ListByMember(ctx, memberID, loan.Status(status))
	if err != nil {
		return nil, err
	}
	return uc.toItems(ctx, list)
}

// ByBarcode 某副本的流通历史(馆员)
func (uc *ListLoansUseCase) ByBarcode(ctx context.Context, barcode string) ([]LoanItem, error) {
	list, err := uc.loanRepo.ListByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return uc.toItems(ctx, list)
}

func (uc *ListLoansUseCase) toItems(ctx context.Context, list []*loan.Loan) ([]LoanItem, error) {
	today := uc.clock.Today()

	items := make([]LoanItem, 0, len(list))
	for _, l := range list {
		item, err := uc.bookRepo.FindItemByBarcode(ctx, l.BookItemBarcode)
		if err != nil {
			return nil, err
		}
		b, err := uc.bookRepo.FindBookByID(ctx, item.BookID)
		if err != nil {
			return nil, err
		}

		li := LoanItem{
			LoanID:       l.ID,
			Barcode:      l.BookItemBarcode,
			BookID:       b.ID,
			BookTitle:    b.Title,
			IssueDate:    l.IssueDate.Format("2006-01-02"),
			DueDate:      l.DueDate.Format("2006-01-02"),
			RenewalCount: l.RenewalCount,
			Status:       string(l.Status),
			Overdue:      l.IsActive() && l.IsOverdue(today),
		}
		if l.ReturnDate != nil {
			li.ReturnDate = l.ReturnDate.Format("2006-01-02")
		}
		items = append(items, li)
	}
	return items, nil
}
