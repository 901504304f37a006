package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// DeleteItemUseCase 下架馆藏副本用例
//
// 业务规则:副本在读者手里(Borrowed)或被保留(Reserved)时不可删除;
// Available/Lost/Damaged状态可以下架
type DeleteItemUseCase struct {
	bookRepo  book.Repository
	txManager TxManager
}

// NewDeleteItemUseCase 创建下架副本用例
func NewDeleteItemUseCase(bookRepo book.Repository, txManager TxManager) *DeleteItemUseCase {
	return &DeleteItemUseCase{bookRepo: bookRepo, txManager: txManager}
}

// Execute 执行下架
// 锁定后校验再删除,防止校验与删除之间副本被借出
func (uc *DeleteItemUseCase) Execute(ctx context.Context, barcode string) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		item, err := uc.bookRepo.LockItemByBarcode(txCtx, barcode)
		if err != nil {
			return err
		}

		if item.InCirculation() {
			return book.ErrItemInCirculation(item.Status)
		}

		return uc.bookRepo.DeleteItem(txCtx, barcode)
	})
}
