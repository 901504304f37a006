package reservation

import (
	"time"
)

// Status 预约状态
// 流转:
//
//	Pending → Fulfilled(排到队首,副本已保留) → Completed(取书借出)
//	                                        → Expired(超时未取)
//	Pending/Fulfilled → Canceled(读者取消)
type Status string

const (
	StatusPending   Status = "Pending"   // 排队中
	StatusFulfilled Status = "Fulfilled" // 已到队首,书已留好等待取书
	StatusCanceled  Status = "Canceled"  // 已取消
	StatusCompleted Status = "Completed" // 已取书,预约完成
	StatusExpired   Status = "Expired"   // 保留超时,自动过期
)

// Reservation 预约(书目级,不针对具体副本)
// 设计说明:
//  1. 队列顺序由ReservationDate决定,严格早于才算排在前面
//  2. 不变式:同一(书目,读者)至多一条Pending或Fulfilled预约
//  3. FulfilledAt在晋升为Fulfilled时写入,保留过期按它计算
//     (而不是按ReservationDate——排了很久的队不应该刚轮到就被判过期)
type Reservation struct {
	ID              uint
	BookID          uint
	MemberID        uint
	ReservationDate time.Time
	FulfilledAt     *time.Time
	Status          Status
}

// NewReservation 创建预约(入队)
func NewReservation(bookID, memberID uint, now time.Time) *Reservation {
	return &Reservation{
		BookID:          bookID,
		MemberID:        memberID,
		ReservationDate: now,
		Status:          StatusPending,
	}
}

// IsHold 是否为"已留书待取"状态
func (r *Reservation) IsHold() bool {
	return r.Status == StatusFulfilled
}

// Fulfill 晋升为队首:书已保留,等待读者取书
func (r *Reservation) Fulfill(now time.Time) error {
	if r.Status != StatusPending {
		return ErrInvalidTransition
	}
	r.Status = StatusFulfilled
	r.FulfilledAt = &now
	return nil
}

// Complete 读者取书,预约完成
func (r *Reservation) Complete() error {
	if r.Status != StatusFulfilled {
		return ErrInvalidTransition
	}
	r.Status = StatusCompleted
	return nil
}

// Cancel 取消预约(Pending或Fulfilled均可取消)
func (r *Reservation) Cancel() error {
	if r.Status != StatusPending && r.Status != StatusFulfilled {
		return ErrInvalidTransition
	}
	r.Status = StatusCanceled
	return nil
}

// Expire 保留超时,预约过期
func (r *Reservation) Expire() error {
	if r.Status != StatusFulfilled {
		return ErrInvalidTransition
	}
	r.Status = StatusExpired
	return nil
}

// HoldExpired 截至now,保留是否已超过expiryDays天
func (r *Reservation) HoldExpired(now time.Time, expiryDays int) bool {
	if r.FulfilledAt == nil {
		return false
	}
	return r.FulfilledAt.Before(now.AddDate(0, 0, -expiryDays))
}
