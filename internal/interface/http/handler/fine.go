package handler

import (
	"github.com/gin-gonic/gin"

	appfine "github.com/xiebiao/library/internal/application/fine"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// FineHandler 罚款HTTP处理器
type FineHandler struct {
	payUseCase   *appfine.PayFineUseCase
	listUseCase  *appfine.ListFinesUseCase
	sweepUseCase *appfine.AccrualSweepUseCase
}

// NewFineHandler 创建罚款处理器
func NewFineHandler(
	payUseCase *appfine.PayFineUseCase,
	listUseCase *appfine.ListFinesUseCase,
	sweepUseCase *appfine.AccrualSweepUseCase,
) *FineHandler {
	return &FineHandler{
		payUseCase:   payUseCase,
		listUseCase:  listUseCase,
		sweepUseCase: sweepUseCase,
	}
}

// payFineRequest 缴纳罚款请求
type payFineRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// PayFine 收缴罚款(馆员柜台)
// @Summary      收缴罚款
// @Description  馆员柜台收款,图书未归还时拒收,支持部分缴纳
// @Tags         罚款
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "罚款ID"
// @Param        request body payFineRequest true "缴纳金额"
// @Success      200 {object} response.Response{data=appfine.PayFineResponse}
// @Router       /api/v1/fines/{id}/payments [post]
func (h *FineHandler) PayFine(c *gin.Context) {
	fineID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req payFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.payUseCase.Execute(c.Request.Context(), &appfine.PayFineRequest{
		FineID: fineID,
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMyFines 本人罚款记录
// @Summary      本人罚款记录
// @Tags         罚款
// @Produce      json
// @Security     BearerAuth
// @Param        include_settled query bool false "是否包含已结清的"
// @Success      200 {object} response.Response{data=appfine.ListFinesResponse}
// @Router       /api/v1/fines [get]
func (h *FineHandler) ListMyFines(c *gin.Context) {
	includeSettled := c.Query("include_settled") == "true"

	result, err := h.listUseCase.Execute(c.Request.Context(),
		middleware.GetUserID(c), includeSettled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMemberFines 馆员查询读者罚款记录
func (h *FineHandler) ListMemberFines(c *gin.Context) {
	memberID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	includeSettled := c.Query("include_settled") == "true"

	result, err := h.listUseCase.Execute(c.Request.Context(), memberID, includeSettled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AccrueFines 立即执行逾期罚款计提(馆员)
// 计提是幂等的,手动触发与定时任务互不干扰
func (h *FineHandler) AccrueFines(c *gin.Context) {
	result, err := h.sweepUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
