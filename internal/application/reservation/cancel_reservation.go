package reservation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// CancelReservationUseCase 取消预约用例
type CancelReservationUseCase struct {
	resRepo   reservation.Repository
	bookRepo  book.Repository
	queue     *QueueService
	txManager TxManager
}

// NewCancelReservationUseCase 创建取消预约用例
func NewCancelReservationUseCase(
	resRepo reservation.Repository,
	bookRepo book.Repository,
	queue *QueueService,
	txManager TxManager,
) *CancelReservationUseCase {
	return &CancelReservationUseCase{
		resRepo:   resRepo,
		bookRepo:  bookRepo,
		queue:     queue,
		txManager: txManager,
	}
}

// CancelReservationRequest 取消预约请求DTO
type CancelReservationRequest struct {
	ReservationID uint
	MemberID      uint // 操作者(读者本人)
	IsStaff       bool // 馆员可代读者取消
}

// Execute 执行取消
//
// Pending预约:直接标记Canceled,队列里后面的人自然前移
// Fulfilled预约:书正被占住(Reserved)等这位读者来取,取消后要在
// 这个被占住的副本上重跑队首交接——有人排队就转留给下一位,没人就回架
func (uc *CancelReservationUseCase) Execute(ctx context.Context, req CancelReservationRequest) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		r, err := uc.resRepo.FindByID(txCtx, req.ReservationID)
		if err != nil {
			return err
		}

		// 只能取消自己的预约(馆员除外)
		if !req.IsStaff && r.MemberID != req.MemberID {
			return apperrors.ErrForbidden
		}

		wasHold := r.IsHold()

		if err := r.Cancel(); err != nil {
			return err
		}
		if err := uc.resRepo.Update(txCtx, r); err != nil {
			return err
		}

		if !wasHold {
			return nil
		}

		// 留书被放弃,在被占住的那个副本上重跑交接
		item, err := uc.bookRepo.FindReservedItemByBook(txCtx, r.BookID)
		if err != nil {
			return err
		}
		if item == nil {
			// 队列状态与副本状态脱节(理论上不该发生),没有可交接的副本
			return nil
		}
		return uc.queue.FulfillNextOrRelease(txCtx, r.BookID, item)
	})
}
