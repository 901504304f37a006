// Package notification 站内通知用例
package notification

import (
	"context"

	"github.com/xiebiao/library/internal/domain/notification"
)

// NotificationItem 通知列表项
type NotificationItem struct {
	NotificationID uint   `json:"notification_id"`
	Message        string `json:"message"`
	CreatedAt      string `json:"created_at"`
	IsRead         bool   `json:"is_read"`
}

// NotificationUseCase 站内通知用例(查询、标记已读)
type NotificationUseCase struct {
	repo notification.Repository
}

// NewNotificationUseCase 创建通知用例
func NewNotificationUseCase(repo notification.Repository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List 读者的通知列表
func (uc *NotificationUseCase) List(ctx context.Context, memberID uint) ([]NotificationItem, error) {
	notifications, err := uc.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	items := make([]NotificationItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, NotificationItem{
			NotificationID: n.ID,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt.Format("2006-01-02 15:04:05"),
			IsRead:         n.IsRead,
		})
	}
	return items, nil
}

// MarkRead 标记某条通知为已读
// memberID用于归属校验,读者只能操作自己的通知
func (uc *NotificationUseCase) MarkRead(ctx context.Context, notificationID, memberID uint) error {
	return uc.repo.MarkRead(ctx, notificationID, memberID)
}

// MarkAllRead 全部标记为已读
func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, memberID uint) error {
	return uc.repo.MarkAllRead(ctx, memberID)
}
