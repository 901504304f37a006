package handler

import (
	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/library/internal/application/notification"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// NotificationHandler 站内通知HTTP处理器
type NotificationHandler struct {
	useCase *appnotification.NotificationUseCase
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(useCase *appnotification.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{useCase: useCase}
}

// List 本人通知列表
func (h *NotificationHandler) List(c *gin.Context) {
	result, err := h.useCase.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MarkRead 标记某条通知为已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.useCase.MarkRead(c.Request.Context(), notificationID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllRead 全部标记为已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.useCase.MarkAllRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
