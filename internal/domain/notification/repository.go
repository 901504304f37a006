package notification

import (
	"context"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ErrNotificationNotFound 通知不存在
var ErrNotificationNotFound = apperrors.New(apperrors.ErrCodeNotificationNotFound, "通知不存在")

// Repository 通知仓储接口
// 对核心用例而言这是一个"通知出口":队列交接、留书到位时写入一条消息
type Repository interface {
	// Create 写入通知
	Create(ctx context.Context, n *Notification) error

	// ListByMember 读者的通知(按时间倒序)
	ListByMember(ctx context.Context, memberID uint) ([]*Notification, error)

	// MarkRead 将读者的某条通知标记为已读
	MarkRead(ctx context.Context, id, memberID uint) error

	// MarkAllRead 将读者的全部未读通知标记为已读
	MarkAllRead(ctx context.Context, memberID uint) error
}
