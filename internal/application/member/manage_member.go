package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// MemberProfile 读者资料
type MemberProfile struct {
	MemberID       uint   `json:"member_id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Status         string `json:"status"`
	DateRegistered string `json:"date_registered"`
}

// UpdateProfileRequest 修改资料请求
// 邮箱是登录标识不可修改,状态变更走独立的馆员接口
type UpdateProfileRequest struct {
	MemberID uint   `json:"-"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// ManageMemberUseCase 读者资料用例(查询、修改、状态变更)
type ManageMemberUseCase struct {
	memberRepo member.Repository
}

// NewManageMemberUseCase 创建读者资料用例
func NewManageMemberUseCase(memberRepo member.Repository) *ManageMemberUseCase {
	return &ManageMemberUseCase{memberRepo: memberRepo}
}

// GetProfile 查询读者资料
func (uc *ManageMemberUseCase) GetProfile(ctx context.Context, memberID uint) (*MemberProfile, error) {
	m, err := uc.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return toProfile(m), nil
}

// Search 按姓名、邮箱或电话模糊查找读者(馆员操作)
func (uc *ManageMemberUseCase) Search(ctx context.Context, query string) ([]*MemberProfile, error) {
	if query == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询关键字不能为空")
	}

	members, err := uc.memberRepo.SearchMembers(ctx, query)
	if err != nil {
		return nil, err
	}

	profiles := make([]*MemberProfile, len(members))
	for i, m := range members {
		profiles[i] = toProfile(m)
	}
	return profiles, nil
}

// UpdateProfile 修改读者资料,空字段不覆盖原值
func (uc *ManageMemberUseCase) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*MemberProfile, error) {
	m, err := uc.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		m.FullName = req.FullName
	}
	if req.Phone != "" {
		m.PhoneNumber = req.Phone
	}
	if req.Address != "" {
		m.Address = req.Address
	}

	if err := uc.memberRepo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}
	return toProfile(m), nil
}

// SetStatus 变更读者账户状态(馆员操作)
// 冻结(Blocked)后读者无法借阅/续借/预约,已借图书仍需归还
func (uc *ManageMemberUseCase) SetStatus(ctx context.Context, memberID uint, status member.Status) (*MemberProfile, error) {
	switch status {
	case member.StatusActive, member.StatusDeactivated, member.StatusBlocked:
	default:
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "未知的账户状态: %s", status)
	}

	m, err := uc.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	m.Status = status
	if err := uc.memberRepo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}
	return toProfile(m), nil
}

func toProfile(m *member.Member) *MemberProfile {
	return &MemberProfile{
		MemberID:       m.ID,
		Email:          m.Email,
		FullName:       m.FullName,
		Phone:          m.PhoneNumber,
		Address:        m.Address,
		Status:         string(m.Status),
		DateRegistered: m.DateRegistered.Format("2006-01-02"),
	}
}
