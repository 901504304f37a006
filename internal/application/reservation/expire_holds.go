package reservation

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/notify"
	"github.com/xiebiao/library/pkg/clock"
)

// ExpireHoldsUseCase 保留过期扫描
// 定时任务周期性执行,也可由馆员手动触发
type ExpireHoldsUseCase struct {
	resRepo   reservation.Repository
	bookRepo  book.Repository
	notifier  notify.Notifier
	txManager TxManager
	policy    config.CirculationConfig
	clock     clock.Clock
}

// NewExpireHoldsUseCase 创建保留过期扫描用例
func NewExpireHoldsUseCase(
	resRepo reservation.Repository,
	bookRepo book.Repository,
	notifier notify.Notifier,
	txManager TxManager,
	policy config.CirculationConfig,
	clk clock.Clock,
) *ExpireHoldsUseCase {
	return &ExpireHoldsUseCase{
		resRepo:   resRepo,
		bookRepo:  bookRepo,
		notifier:  notifier,
		txManager: txManager,
		policy:    policy,
		clock:     clk,
	}
}

// ExpireHoldsResponse 扫描结果
type ExpireHoldsResponse struct {
	Expired int `json:"expired"` // 本次过期释放的预约数
}

// Execute 执行保留过期扫描
//
// 留书超过保留天数仍未取走的Fulfilled预约:标记Expired,被占住的
// 副本释放回架(Available)
//
// 注意:过期释放不交接给队列的下一位,只有读者主动取消才触发交接
// (过期说明这本书在馆里压了好几天,直接回架让到馆读者能借走,
// 队列里的下一位等下一次归还)
//
// 过期判定基于fulfilled_at(留书时间),不是reservation_date:
// 排了很久队的预约不应该刚轮到就被判过期
func (uc *ExpireHoldsUseCase) Execute(ctx context.Context) (*ExpireHoldsResponse, error) {
	cutoff := uc.clock.Now().AddDate(0, 0, -uc.policy.HoldExpiryDays)

	stale, err := uc.resRepo.ListStaleFulfilled(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	expired := 0
	for _, r := range stale {
		// 每条预约独立事务:一条失败不影响其余,下个周期重试
		err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
			return uc.expireOne(txCtx, r)
		})
		if err != nil {
			log.Printf("保留过期处理失败: reservation_id=%d, err=%v", r.ID, err)
			continue
		}
		expired++
	}

	return &ExpireHoldsResponse{Expired: expired}, nil
}

func (uc *ExpireHoldsUseCase) expireOne(ctx context.Context, r *reservation.Reservation) error {
	if err := r.Expire(); err != nil {
		return err
	}
	if err := uc.resRepo.Update(ctx, r); err != nil {
		return err
	}

	// 释放被占住的副本
	item, err := uc.bookRepo.FindReservedItemByBook(ctx, r.BookID)
	if err != nil {
		return err
	}
	if item != nil {
		if err := item.TransitionTo(book.ItemAvailable); err != nil {
			return err
		}
		if err := uc.bookRepo.UpdateItem(ctx, item); err != nil {
			return err
		}
	}

	b, err := uc.bookRepo.FindBookByID(ctx, r.BookID)
	if err != nil {
		return err
	}
	return uc.notifier.HoldExpired(ctx, r.MemberID, r.BookID, b.Title)
}
