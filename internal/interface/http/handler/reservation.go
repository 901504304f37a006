package handler

import (
	"github.com/gin-gonic/gin"

	appreservation "github.com/xiebiao/library/internal/application/reservation"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// ReservationHandler 预约HTTP处理器
type ReservationHandler struct {
	createUseCase *appreservation.CreateReservationUseCase
	cancelUseCase *appreservation.CancelReservationUseCase
	listUseCase   *appreservation.ListReservationsUseCase
	expireUseCase *appreservation.ExpireHoldsUseCase
}

// NewReservationHandler 创建预约处理器
func NewReservationHandler(
	createUseCase *appreservation.CreateReservationUseCase,
	cancelUseCase *appreservation.CancelReservationUseCase,
	listUseCase *appreservation.ListReservationsUseCase,
	expireUseCase *appreservation.ExpireHoldsUseCase,
) *ReservationHandler {
	return &ReservationHandler{
		createUseCase: createUseCase,
		cancelUseCase: cancelUseCase,
		listUseCase:   listUseCase,
		expireUseCase: expireUseCase,
	}
}

// createReservationRequest 预约请求
type createReservationRequest struct {
	BookID uint `json:"book_id" binding:"required"`
}

// CreateReservation 预约书目
// @Summary      预约书目
// @Description  全部副本都借出时读者排队等书,FIFO
// @Tags         预约
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createReservationRequest true "书目ID"
// @Success      200 {object} response.Response{data=appreservation.CreateReservationResponse}
// @Router       /api/v1/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appreservation.CreateReservationRequest{
		BookID:   req.BookID,
		MemberID: middleware.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelReservation 取消预约
// @Summary      取消预约
// @Description  读者本人或馆员代办,已留书的取消会把书交给队列下一位
// @Tags         预约
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "预约ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	reservationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	err := h.cancelUseCase.Execute(c.Request.Context(), appreservation.CancelReservationRequest{
		ReservationID: reservationID,
		MemberID:      middleware.GetUserID(c),
		IsStaff:       middleware.IsStaff(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListMyReservations 本人的有效预约(含队列位置)
// @Summary      本人的有效预约
// @Tags         预约
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/reservations [get]
func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ExpireHolds 立即执行过期留书释放(馆员)
// 后台任务按固定间隔自动执行,这里提供手动触发入口
func (h *ReservationHandler) ExpireHolds(c *gin.Context) {
	result, err := h.expireUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
