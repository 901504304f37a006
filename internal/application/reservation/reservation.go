// Package reservation 预约队列用例:入队、取消、保留过期、队列位置
//
// 设计说明:
// 1. 预约是书目级的:读者排的是"这种书"的队,不指定具体副本
// 2. 队列顺序完全由reservation_date决定,严格早于才算排在前面
// 3. 队首交接(fulfill-next-or-release)被归还和取消两条路径复用
package reservation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/notify"
	"github.com/xiebiao/library/pkg/clock"
)

// TxManager 事务管理接口
// 由infrastructure/persistence/mysql.TxManager实现,测试时用直通假实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// QueueService 队列交接服务
// 封装"交给下一位或释放"这一核心操作,供归还/取消用例复用
type QueueService struct {
	resRepo  reservation.Repository
	bookRepo book.Repository
	notifier notify.Notifier
	clock    clock.Clock
}

// NewQueueService 创建队列交接服务
func NewQueueService(
	resRepo reservation.Repository,
	bookRepo book.Repository,
	notifier notify.Notifier,
	clk clock.Clock,
) *QueueService {
	return &QueueService{
		resRepo:  resRepo,
		bookRepo: bookRepo,
		notifier: notifier,
		clock:    clk,
	}
}

// FulfillNextOrRelease 把副本交给书目队列的下一位,或释放回架
//
// 队列里有Pending预约:队首晋升为Fulfilled,副本→Reserved,通知该读者取书;
// 队列为空:副本→Available
//
// 归还时和"取消已留书预约"时都走这里,
// 后者传入的就是原来被占住的那个Reserved副本,不另挑新副本
func (s *QueueService) FulfillNextOrRelease(ctx context.Context, bookID uint, item *book.BookItem) error {
	next, err := s.resRepo.FindNextPending(ctx, bookID)
	if err != nil {
		return err
	}

	if next == nil {
		// 无人排队,回架
		return s.release(ctx, item)
	}

	// 队首晋升
	if err := next.Fulfill(s.clock.Now()); err != nil {
		return err
	}
	if err := s.resRepo.Update(ctx, next); err != nil {
		return err
	}

	if item.Status != book.ItemReserved {
		if err := item.TransitionTo(book.ItemReserved); err != nil {
			return err
		}
		if err := s.bookRepo.UpdateItem(ctx, item); err != nil {
			return err
		}
	}

	// 通知新的留书对象
	b, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return err
	}
	return s.notifier.HoldReady(ctx, next.MemberID, bookID, b.Title)
}

// release 副本回架
func (s *QueueService) release(ctx context.Context, item *book.BookItem) error {
	if item.Status == book.ItemAvailable {
		return nil
	}
	if err := item.TransitionTo(book.ItemAvailable); err != nil {
		return err
	}
	return s.bookRepo.UpdateItem(ctx, item)
}

// PositionOf 计算预约的队列位置
//
// Pending: 1 + 同书目中reservation_date严格早于本预约的Pending数量
// (时间戳相同不算排在前面)
// Fulfilled: 0,表示书已留好等待取书
func (s *QueueService) PositionOf(ctx context.Context, r *reservation.Reservation) (int, error) {
	switch r.Status {
	case reservation.StatusFulfilled:
		return 0, nil
	case reservation.StatusPending:
		earlier, err := s.resRepo.CountPendingBefore(ctx, r.BookID, r.ReservationDate)
		if err != nil {
			return 0, err
		}
		return int(earlier) + 1, nil
	default:
		// 已关闭的预约没有队列位置
		return -1, nil
	}
}
