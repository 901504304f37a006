package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// memberRepository 读者/馆员仓储实现(MySQL)
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建读者仓储
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

// CreateMember 注册读者
func (r *memberRepository) CreateMember(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		FullName:       m.FullName,
		PhoneNumber:    m.PhoneNumber,
		Address:        m.Address,
		Status:         string(m.Status),
		DateRegistered: m.DateRegistered,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return member.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "注册读者失败")
	}
	m.ID = model.ID
	return nil
}

// FindMemberByID 根据ID查找读者
func (r *memberRepository) FindMemberByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询读者失败")
	}
	return toMemberEntity(&model), nil
}

// FindMemberByEmail 根据邮箱查找读者
func (r *memberRepository) FindMemberByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询读者失败")
	}
	return toMemberEntity(&model), nil
}

// SearchMembers 按姓名、邮箱或电话模糊查找读者
// MySQL默认排序规则下LIKE不区分大小写
func (r *memberRepository) SearchMembers(ctx context.Context, query string) ([]*member.Member, error) {
	pattern := "%" + query + "%"
	var models []MemberModel
	err := getDB(ctx, r.db).
		Where("full_name LIKE ? OR email LIKE ? OR phone_number LIKE ?", pattern, pattern, pattern).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查找读者失败")
	}
	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, nil
}

// UpdateMember 更新读者
func (r *memberRepository) UpdateMember(ctx context.Context, m *member.Member) error {
	model := &MemberModel{
		ID:             m.ID,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		FullName:       m.FullName,
		PhoneNumber:    m.PhoneNumber,
		Address:        m.Address,
		Status:         string(m.Status),
		DateRegistered: m.DateRegistered,
	}
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新读者失败")
	}
	return nil
}

// DeleteMember 删除读者
func (r *memberRepository) DeleteMember(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&MemberModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除读者失败")
	}
	if result.RowsAffected == 0 {
		return member.ErrMemberNotFound
	}
	return nil
}

// CreateLibrarian 创建馆员账户
func (r *memberRepository) CreateLibrarian(ctx context.Context, l *member.Librarian) error {
	model := &LibrarianModel{
		Email:          l.Email,
		HashedPassword: l.HashedPassword,
		FullName:       l.FullName,
		Role:           string(l.Role),
		IsActive:       l.IsActive,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return member.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建馆员失败")
	}
	l.ID = model.ID
	return nil
}

// FindLibrarianByID 根据ID查找馆员
func (r *memberRepository) FindLibrarianByID(ctx context.Context, id uint) (*member.Librarian, error) {
	var model LibrarianModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrLibrarianNotFound
		}
		return nil, apperrors.Wrap(err, "查询馆员失败")
	}
	return toLibrarianEntity(&model), nil
}

// FindLibrarianByEmail 根据邮箱查找馆员
func (r *memberRepository) FindLibrarianByEmail(ctx context.Context, email string) (*member.Librarian, error) {
	var model LibrarianModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrLibrarianNotFound
		}
		return nil, apperrors.Wrap(err, "查询馆员失败")
	}
	return toLibrarianEntity(&model), nil
}

// ListLibrarians 馆员列表
func (r *memberRepository) ListLibrarians(ctx context.Context) ([]*member.Librarian, error) {
	var models []LibrarianModel
	if err := getDB(ctx, r.db).Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询馆员列表失败")
	}
	librarians := make([]*member.Librarian, len(models))
	for i := range models {
		librarians[i] = toLibrarianEntity(&models[i])
	}
	return librarians, nil
}

// DeleteLibrarian 删除馆员账户
func (r *memberRepository) DeleteLibrarian(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&LibrarianModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除馆员失败")
	}
	if result.RowsAffected == 0 {
		return member.ErrLibrarianNotFound
	}
	return nil
}

func toMemberEntity(m *MemberModel) *member.Member {
	return &member.Member{
		ID:             m.ID,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		FullName:       m.FullName,
		PhoneNumber:    m.PhoneNumber,
		Address:        m.Address,
		Status:         member.Status(m.Status),
		DateRegistered: m.DateRegistered,
	}
}

func toLibrarianEntity(m *LibrarianModel) *member.Librarian {
	return &member.Librarian{
		ID:             m.ID,
		Email:          m.Email,
		HashedPassword: m.HashedPassword,
		FullName:       m.FullName,
		Role:           member.Role(m.Role),
		IsActive:       m.IsActive,
	}
}
