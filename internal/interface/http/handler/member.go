package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// MemberHandler 读者与馆员账户HTTP处理器
type MemberHandler struct {
	registerUseCase   *appmember.RegisterMemberUseCase
	manageUseCase     *appmember.ManageMemberUseCase
	deleteUseCase     *appmember.DeleteMemberUseCase
	librariansUseCase *appmember.ManageLibrariansUseCase
}

// NewMemberHandler 创建账户处理器
func NewMemberHandler(
	registerUseCase *appmember.RegisterMemberUseCase,
	manageUseCase *appmember.ManageMemberUseCase,
	deleteUseCase *appmember.DeleteMemberUseCase,
	librariansUseCase *appmember.ManageLibrariansUseCase,
) *MemberHandler {
	return &MemberHandler{
		registerUseCase:   registerUseCase,
		manageUseCase:     manageUseCase,
		deleteUseCase:     deleteUseCase,
		librariansUseCase: librariansUseCase,
	}
}

// Register 读者注册
// @Summary      读者注册
// @Tags         读者
// @Accept       json
// @Produce      json
// @Param        request body appmember.RegisterMemberRequest true "注册信息"
// @Success      200 {object} response.Response{data=appmember.RegisterMemberResponse}
// @Router       /api/v1/members/register [post]
func (h *MemberHandler) Register(c *gin.Context) {
	var req appmember.RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetProfile 查询本人资料
// @Summary      查询本人资料
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appmember.MemberProfile}
// @Router       /api/v1/members/me [get]
func (h *MemberHandler) GetProfile(c *gin.Context) {
	result, err := h.manageUseCase.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateProfile 修改本人资料
// @Summary      修改本人资料
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body appmember.UpdateProfileRequest true "资料"
// @Success      200 {object} response.Response{data=appmember.MemberProfile}
// @Router       /api/v1/members/me [put]
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	var req appmember.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}
	req.MemberID = middleware.GetUserID(c)

	result, err := h.manageUseCase.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchMembers 馆员按姓名、邮箱或电话查找读者
// @Summary      查找读者(馆员)
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "查询关键字"
// @Success      200 {object} response.Response{data=[]appmember.MemberProfile}
// @Router       /api/v1/members/search [get]
func (h *MemberHandler) SearchMembers(c *gin.Context) {
	result, err := h.manageUseCase.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetMember 馆员查询读者资料
// @Summary      查询读者资料(馆员)
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=appmember.MemberProfile}
// @Router       /api/v1/members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	memberID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := h.manageUseCase.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// setStatusRequest 账户状态变更请求
type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus 变更读者账户状态
// @Summary      变更读者账户状态(馆员)
// @Tags         读者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Param        request body setStatusRequest true "目标状态:Active/Deactivated/Blocked"
// @Success      200 {object} response.Response{data=appmember.MemberProfile}
// @Router       /api/v1/members/{id}/status [put]
func (h *MemberHandler) SetStatus(c *gin.Context) {
	memberID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.SetStatus(c.Request.Context(), memberID, member.Status(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteMember 删除读者
// @Summary      删除读者(馆员)
// @Tags         读者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	memberID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), memberID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// CreateLibrarian 创建馆员账户(管理员)
func (h *MemberHandler) CreateLibrarian(c *gin.Context) {
	var req appmember.CreateLibrarianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.librariansUseCase.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListLibrarians 馆员列表(管理员)
func (h *MemberHandler) ListLibrarians(c *gin.Context) {
	result, err := h.librariansUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteLibrarian 删除馆员账户(管理员)
func (h *MemberHandler) DeleteLibrarian(c *gin.Context) {
	librarianID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.librariansUseCase.Delete(c.Request.Context(), librarianID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// parseUintParam 解析路径中的数字ID,失败时直接写响应
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的"+name+"参数")
		return 0, false
	}
	return uint(value), true
}
