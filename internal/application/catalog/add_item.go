package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/clock"
)

// AddItemRequest 登记副本请求
type AddItemRequest struct {
	BookID  uint   `json:"book_id" binding:"required"`
	Barcode string `json:"barcode" binding:"required"`
}

// AddItemResponse 登记副本响应
type AddItemResponse struct {
	Barcode string `json:"barcode"`
	BookID  uint   `json:"book_id"`
	Status  string `json:"status"`
}

// AddItemUseCase 登记馆藏副本用例
// 新副本入藏即为Available状态,立即可借
type AddItemUseCase struct {
	bookRepo book.Repository
	clock    clock.Clock
}

// NewAddItemUseCase 创建登记副本用例
func NewAddItemUseCase(bookRepo book.Repository, clk clock.Clock) *AddItemUseCase {
	return &AddItemUseCase{bookRepo: bookRepo, clock: clk}
}

// Execute 执行登记
func (uc *AddItemUseCase) Execute(ctx context.Context, req *AddItemRequest) (*AddItemResponse, error) {
	if _, err := uc.bookRepo.FindBookByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	item := book.NewItem(req.Barcode, req.BookID, uc.clock.Today())
	if err := uc.bookRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return &AddItemResponse{
		Barcode: item.Barcode,
		BookID:  item.BookID,
		Status:  string(item.Status),
	}, nil
}
