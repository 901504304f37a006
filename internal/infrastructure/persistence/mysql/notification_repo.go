package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/notification"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// notificationRepository 通知仓储实现(MySQL)
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create 写入通知
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := &NotificationModel{
		MemberID:  n.MemberID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		IsRead:    n.IsRead,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入通知失败")
	}
	n.ID = model.ID
	return nil
}

// ListByMember 读者的通知(按时间倒序)
func (r *notificationRepository) ListByMember(ctx context.Context, memberID uint) ([]*notification.Notification, error) {
	var models []NotificationModel
	err := getDB(ctx, r.db).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询通知失败")
	}

	out := make([]*notification.Notification, len(models))
	for i := range models {
		out[i] = &notification.Notification{
			ID:        models[i].ID,
			MemberID:  models[i].MemberID,
			Message:   models[i].Message,
			CreatedAt: models[i].CreatedAt,
			IsRead:    models[i].IsRead,
		}
	}
	return out, nil
}

// MarkRead 标记某条通知为已读
// member_id参与过滤,防止读者操作他人通知
func (r *notificationRepository) MarkRead(ctx context.Context, id, memberID uint) error {
	result := getDB(ctx, r.db).Model(&NotificationModel{}).
		Where("id = ? AND member_id = ?", id, memberID).
		Update("is_read", true)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新通知失败")
	}
	if result.RowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead 标记读者的全部未读通知为已读
func (r *notificationRepository) MarkAllRead(ctx context.Context, memberID uint) error {
	err := getDB(ctx, r.db).Model(&NotificationModel{}).
		Where("member_id = ? AND is_read = ?", memberID, false).
		Update("is_read", true).Error
	if err != nil {
		return apperrors.Wrap(err, "更新通知失败")
	}
	return nil
}
