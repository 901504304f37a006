package notification

import (
	"time"
)

// Notification 站内通知
// 预约留书、交接顺延等事件产生,读者上线后查看
type Notification struct {
	ID        uint
	MemberID  uint
	Message   string
	CreatedAt time.Time
	IsRead    bool
}

// New 创建通知
func New(memberID uint, message string, now time.Time) *Notification {
	return &Notification{
		MemberID:  memberID,
		Message:   message,
		CreatedAt: now,
	}
}
