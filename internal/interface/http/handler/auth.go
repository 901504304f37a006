package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/xiebiao/library/internal/application/auth"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// AuthHandler 登录认证HTTP处理器
type AuthHandler struct {
	loginUseCase   *appauth.LoginUseCase
	refreshUseCase *appauth.RefreshUseCase
	logoutUseCase  *appauth.LogoutUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(
	loginUseCase *appauth.LoginUseCase,
	refreshUseCase *appauth.RefreshUseCase,
	logoutUseCase *appauth.LogoutUseCase,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:   loginUseCase,
		refreshUseCase: refreshUseCase,
		logoutUseCase:  logoutUseCase,
	}
}

// Login 登录
// @Summary      登录
// @Description  读者或馆员登录,返回JWT Token对
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body appauth.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appauth.LoginResponse}
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appauth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// refreshRequest 刷新Token请求
type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh 刷新Access Token
// @Summary      刷新Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body refreshRequest true "Refresh Token"
// @Success      200 {object} response.Response
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	accessToken, err := h.refreshUseCase.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"access_token": accessToken})
}

// Logout 登出
// @Summary      登出
// @Description  删除会话并将当前Token拉入黑名单
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.logoutUseCase.Execute(
		c.Request.Context(),
		middleware.GetRole(c),
		middleware.GetUserID(c),
		middleware.GetAccessToken(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
