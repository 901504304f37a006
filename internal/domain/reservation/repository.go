package reservation

import (
	"context"
	"time"
)

// Repository 预约仓储接口
type Repository interface {
	// Create 创建预约
	Create(ctx context.Context, r *Reservation) error

	// FindByID 根据ID查找预约
	FindByID(ctx context.Context, id uint) (*Reservation, error)

	// FindActiveByBookAndMember 查找某读者对某书的有效预约(Pending或Fulfilled)
	// 不变式:至多一条(重复预约校验)
	FindActiveByBookAndMember(ctx context.Context, bookID, memberID uint) (*Reservation, error)

	// FindFulfilledByBookAndMember 查找某读者对某书的已留书预约
	// 用途:Reserved副本借出时确认"书是留给这位读者的"
	FindFulfilledByBookAndMember(ctx context.Context, bookID, memberID uint) (*Reservation, error)

	// FindNextPending 某书目排队最久的Pending预约(FIFO队首)
	// 无排队时返回(nil, nil)
	FindNextPending(ctx context.Context, bookID uint) (*Reservation, error)

	// CountPendingBefore 某书目在t之前(严格早于)创建的Pending预约数量
	// 用途:队列位置 = 1 + 该数量;时间戳相同不算排在前面
	CountPendingBefore(ctx context.Context, bookID uint, t time.Time) (int64, error)

	// CountPendingByBook 某书目排队中的预约总数(续借前校验)
	CountPendingByBook(ctx context.Context, bookID uint) (int64, error)

	// CountActiveByBook 某书目的有效预约总数(删除书目前校验)
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)

	// ListStaleFulfilled 留书时间早于before的Fulfilled预约(过期扫描)
	ListStaleFulfilled(ctx context.Context, before time.Time) ([]*Reservation, error)

	// ListActiveByMember 读者的有效预约(Pending/Fulfilled)
	ListActiveByMember(ctx context.Context, memberID uint) ([]*Reservation, error)

	// Update 更新预约(状态流转)
	Update(ctx context.Context, r *Reservation) error
}
