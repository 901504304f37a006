package reservation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// ListReservationsUseCase 读者预约列表(含队列位置)
type ListReservationsUseCase struct {
	resRepo  reservation.Repository
	bookRepo book.Repository
	queue    *QueueService
}

// NewListReservationsUseCase 创建预约列表用例
func NewListReservationsUseCase(
	resRepo reservation.Repository,
	bookRepo book.Repository,
	queue *QueueService,
) *ListReservationsUseCase {
	return &ListReservationsUseCase{
		resRepo:  resRepo,
		bookRepo: bookRepo,
		queue:    queue,
	}
}

// ReservationItem 预约列表项DTO
type ReservationItem struct {
	ReservationID   uint   `json:"reservation_id"`
	BookID          uint   `json:"book_id"`
	BookTitle       string `json:"book_title"`
	Status          string `json:"status"`
	Position        int    `json:"position"` // Pending=队列位置,Fulfilled=0(待取书)
	ReservationDate string `json:"reservation_date"`
}

// Execute 查询读者的有效预约
func (uc *ListReservationsUseCase) Execute(ctx context.Context, memberID uint) ([]ReservationItem, error) {
	list, err := uc.resRepo.ListActiveByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	items := make([]ReservationItem, 0, len(list))
	for _, r := range list {
		pos, err := uc.queue.PositionOf(ctx, r)
		if err != nil {
			return nil, err
		}

		b, err := uc.bookRepo.FindBookByID(ctx, r.BookID)
		if err != nil {
			return nil, err
		}

		items = append(items, ReservationItem{
			ReservationID:   r.ID,
			BookID:          r.BookID,
			BookTitle:       b.Title,
			Status:          string(r.Status),
			Position:        pos,
			ReservationDate: r.ReservationDate.Format("2006-01-02 15:04:05"),
		})
	}
	return items, nil
}
