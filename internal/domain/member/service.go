package member

import (
	"context"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 读者/馆员领域服务
// 设计说明:
// 1. 密码加密、验证不属于单个实体,放在领域服务里
// 2. 依赖Repository接口,不依赖具体实现
type Service interface {
	// RegisterMember 注册读者(密码bcrypt加密)
	RegisterMember(ctx context.Context, email, password, fullName, phone, address string, now time.Time) (*Member, error)

	// AuthenticateMember 读者登录校验
	AuthenticateMember(ctx context.Context, email, password string) (*Member, error)

	// AuthenticateLibrarian 馆员登录校验
	AuthenticateLibrarian(ctx context.Context, email, password string) (*Librarian, error)

	// CreateLibrarian 创建馆员账户(管理员操作)
	CreateLibrarian(ctx context.Context, email, password, fullName string, role Role) (*Librarian, error)
}

type service struct {
	repo Repository
}

// NewService 创建领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// RegisterMember 注册读者
// 业务规则:邮箱格式、密码强度(8-20位含字母和数字)校验后bcrypt加密(cost=12)
// 邮箱唯一性由数据库UNIQUE索引保证,仓储把重复错误转换为ErrEmailDuplicate
func (s *service) RegisterMember(ctx context.Context, email, password, fullName, phone, address string, now time.Time) (*Member, error) {
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}
	if len(fullName) < 2 || len(fullName) > 100 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-100个字符")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	m := NewMember(email, string(hashed), fullName, phone, address, now)
	if err := s.repo.CreateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// AuthenticateMember 读者登录校验
func (s *service) AuthenticateMember(ctx context.Context, email, password string) (*Member, error) {
	m, err := s.repo.FindMemberByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := comparePassword(m.HashedPassword, password); err != nil {
		return nil, err
	}
	return m, nil
}

// AuthenticateLibrarian 馆员登录校验
// 停用的馆员账户不允许登录
func (s *service) AuthenticateLibrarian(ctx context.Context, email, password string) (*Librarian, error) {
	l, err := s.repo.FindLibrarianByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := comparePassword(l.HashedPassword, password); err != nil {
		return nil, err
	}
	if !l.IsActive {
		return nil, apperrors.ErrForbidden
	}
	return l, nil
}

// CreateLibrarian 创建馆员账户
func (s *service) CreateLibrarian(ctx context.Context, email, password, fullName string, role Role) (*Librarian, error) {
	if !isValidEmail(email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}
	if role != RoleLibrarian && role != RoleAdmin {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "未知的馆员角色: %s", role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	l := &Librarian{
		Email:          email,
		HashedPassword: string(hashed),
		FullName:       fullName,
		Role:           role,
		IsActive:       true,
	}
	if err := s.repo.CreateLibrarian(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// comparePassword 验证明文密码与哈希值是否匹配
func comparePassword(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// isValidEmail 邮箱格式校验
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验:8-20位,必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "密码需为8-20位且包含字母和数字")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasDigit {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "密码需为8-20位且包含字母和数字")
	}
	return nil
}
