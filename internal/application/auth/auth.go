// Package auth 登录认证用例
//
// 读者与馆员共用一套登录接口,靠请求里的账号类型路由到不同的账号表,
// JWT的Role字段区分两类身份,馆员专属操作由路由中间件拦截。
package auth

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
)

// LoginRequest 登录请求
// AccountType取值:member(读者,默认) | librarian(馆员)
type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	AccountType string `json:"account_type"`
}

// UserInfo 登录账号信息
type UserInfo struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间(秒)
}

// LoginUseCase 登录用例
type LoginUseCase struct {
	memberService member.Service
	jwtManager    *jwt.Manager
	sessionStore  *redis.SessionStore
	sessionTTL    time.Duration
}

// NewLoginUseCase 创建登录用例
// sessionTTL通常取Refresh Token有效期
func NewLoginUseCase(
	memberService member.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	sessionTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		memberService: memberService,
		jwtManager:    jwtManager,
		sessionStore:  sessionStore,
		sessionTTL:    sessionTTL,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var info UserInfo

	switch req.AccountType {
	case "", jwt.RoleMember:
		m, err := uc.memberService.AuthenticateMember(ctx, req.Email, req.Password)
		if err != nil {
			return nil, err
		}
		info = UserInfo{ID: m.ID, Email: m.Email, FullName: m.FullName, Role: jwt.RoleMember}

	case jwt.RoleLibrarian:
		l, err := uc.memberService.AuthenticateLibrarian(ctx, req.Email, req.Password)
		if err != nil {
			return nil, err
		}
		role := jwt.RoleLibrarian
		if l.Role == member.RoleAdmin {
			role = jwt.RoleAdmin
		}
		info = UserInfo{ID: l.ID, Email: l.Email, FullName: l.FullName, Role: role}

	default:
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "未知的账号类型: %s", req.AccountType)
	}

	tokenPair, err := uc.jwtManager.GenerateToken(info.ID, info.Email, info.Role)
	if err != nil {
		return nil, err
	}

	// 会话保存失败不影响登录
	sessionData := map[string]interface{}{
		"user_id":  info.ID,
		"email":    info.Email,
		"role":     info.Role,
		"login_at": time.Now().Unix(),
	}
	_ = uc.sessionStore.SaveSession(ctx, info.Role, info.ID, sessionData, uc.sessionTTL)

	return &LoginResponse{
		User:         info,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// RefreshUseCase 刷新Access Token用例
type RefreshUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewRefreshUseCase 创建刷新用例
func NewRefreshUseCase(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *RefreshUseCase {
	return &RefreshUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行刷新
// Refresh Token在黑名单中(已登出)时拒绝
func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (string, error) {
	blacklisted, err := uc.sessionStore.IsInBlacklist(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if blacklisted {
		return "", apperrors.ErrInvalidToken
	}

	return uc.jwtManager.RefreshAccessToken(refreshToken)
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
	tokenTTL     time.Duration
}

// NewLogoutUseCase 创建登出用例
// tokenTTL取Access Token有效期:黑名单只需覆盖Token的残余生命期
func NewLogoutUseCase(sessionStore *redis.SessionStore, tokenTTL time.Duration) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, tokenTTL: tokenTTL}
}

// Execute 执行登出:删除会话并把Access Token拉入黑名单
func (uc *LogoutUseCase) Execute(ctx context.Context, role string, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, role, userID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.tokenTTL)
}
