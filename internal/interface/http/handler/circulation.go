package handler

import (
	"github.com/gin-gonic/gin"

	appcirculation "github.com/xiebiao/library/internal/application/circulation"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// CirculationHandler 流通HTTP处理器(借出、归还、续借、挂失)
// 借出/归还/挂失是馆员柜台操作,续借读者本人也可发起
type CirculationHandler struct {
	issueUseCase  *appcirculation.IssueLoanUseCase
	returnUseCase *appcirculation.ReturnLoanUseCase
	renewUseCase  *appcirculation.RenewLoanUseCase
	lostUseCase   *appcirculation.MarkLostUseCase
	listUseCase   *appcirculation.ListLoansUseCase
}

// NewCirculationHandler 创建流通处理器
func NewCirculationHandler(
	issueUseCase *appcirculation.IssueLoanUseCase,
	returnUseCase *appcirculation.ReturnLoanUseCase,
	renewUseCase *appcirculation.RenewLoanUseCase,
	lostUseCase *appcirculation.MarkLostUseCase,
	listUseCase *appcirculation.ListLoansUseCase,
) *CirculationHandler {
	return &CirculationHandler{
		issueUseCase:  issueUseCase,
		returnUseCase: returnUseCase,
		renewUseCase:  renewUseCase,
		lostUseCase:   lostUseCase,
		listUseCase:   listUseCase,
	}
}

// issueLoanRequest 借出请求
type issueLoanRequest struct {
	MemberID    uint   `json:"member_id" binding:"required"`
	ItemBarcode string `json:"item_barcode" binding:"required"`
	PeriodDays  int    `json:"period_days"`
}

// IssueLoan 借出
// @Summary      借出图书
// @Description  馆员扫码为读者办理借出
// @Tags         流通
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body issueLoanRequest true "借出信息"
// @Success      200 {object} response.Response{data=appcirculation.IssueLoanResponse}
// @Router       /api/v1/loans [post]
func (h *CirculationHandler) IssueLoan(c *gin.Context) {
	var req issueLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.issueUseCase.Execute(c.Request.Context(), appcirculation.IssueLoanRequest{
		MemberID:    req.MemberID,
		ItemBarcode: req.ItemBarcode,
		PeriodDays:  req.PeriodDays,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// returnLoanRequest 归还请求
type returnLoanRequest struct {
	ItemBarcode string `json:"item_barcode" binding:"required"`
	Damaged     bool   `json:"damaged"`
}

// ReturnLoan 归还
// @Summary      归还图书
// @Description  馆员扫码办理归还,损坏归还时副本下架并开罚款
// @Tags         流通
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body returnLoanRequest true "归还信息"
// @Success      200 {object} response.Response{data=appcirculation.ReturnLoanResponse}
// @Router       /api/v1/returns [post]
func (h *CirculationHandler) ReturnLoan(c *gin.Context) {
	var req returnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), appcirculation.ReturnLoanRequest{
		ItemBarcode: req.ItemBarcode,
		Damaged:     req.Damaged,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RenewLoan 续借
// @Summary      续借
// @Description  读者本人或馆员代办,逾期或有人排队时不可续借
// @Tags         流通
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=appcirculation.RenewLoanResponse}
// @Router       /api/v1/loans/{id}/renew [post]
func (h *CirculationHandler) RenewLoan(c *gin.Context) {
	loanID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.renewUseCase.Execute(c.Request.Context(), appcirculation.RenewLoanRequest{
		LoanID:  loanID,
		ActorID: middleware.GetUserID(c),
		IsStaff: middleware.IsStaff(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// markLostRequest 挂失请求
type markLostRequest struct {
	ReplacementFee float64 `json:"replacement_fee" binding:"required"`
}

// MarkLost 挂失
// @Summary      图书挂失
// @Description  馆员按书价核定赔偿金额,借阅关闭、副本置为Lost
// @Tags         流通
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "借阅ID"
// @Param        request body markLostRequest true "赔偿金额"
// @Success      200 {object} response.Response{data=appcirculation.MarkLostResponse}
// @Router       /api/v1/loans/{id}/lost [post]
func (h *CirculationHandler) MarkLost(c *gin.Context) {
	loanID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req markLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.lostUseCase.Execute(c.Request.Context(), appcirculation.MarkLostRequest{
		LoanID:         loanID,
		ReplacementFee: req.ReplacementFee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMyLoans 本人借阅记录
// @Summary      本人借阅记录
// @Tags         流通
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "按状态过滤:Active/Returned/Lost"
// @Success      200 {object} response.Response
// @Router       /api/v1/loans [get]
func (h *CirculationHandler) ListMyLoans(c *gin.Context) {
	result, err := h.listUseCase.ByMember(c.Request.Context(),
		middleware.GetUserID(c), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMemberLoans 馆员查询读者借阅记录
func (h *CirculationHandler) ListMemberLoans(c *gin.Context) {
	memberID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.listUseCase.ByMember(c.Request.Context(), memberID, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListItemLoans 馆员查询副本借阅历史
func (h *CirculationHandler) ListItemLoans(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的barcode参数")
		return
	}

	result, err := h.listUseCase.ByBarcode(c.Request.Context(), barcode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
