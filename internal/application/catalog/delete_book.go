package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// DeleteBookUseCase 删除书目用例
//
// 业务规则:书目下仍有馆藏副本或仍有读者排队预约时不可删除,
// 校验与删除在同一事务内完成,防止校验后有人抢先预约
type DeleteBookUseCase struct {
	bookRepo  book.Repository
	resRepo   reservation.Repository
	txManager TxManager
}

// NewDeleteBookUseCase 创建删除书目用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	resRepo reservation.Repository,
	txManager TxManager,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:  bookRepo,
		resRepo:   resRepo,
		txManager: txManager,
	}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, bookID uint) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.bookRepo.FindBookByID(txCtx, bookID); err != nil {
			return err
		}

		itemCount, err := uc.bookRepo.CountItemsByBook(txCtx, bookID)
		if err != nil {
			return err
		}
		if itemCount > 0 {
			return book.ErrBookHasItems
		}

		resCount, err := uc.resRepo.CountActiveByBook(txCtx, bookID)
		if err != nil {
			return err
		}
		if resCount > 0 {
			return book.ErrBookHasReservations
		}

		return uc.bookRepo.DeleteBook(txCtx, bookID)
	})
}
