package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/pkg/clock"
)

// RegisterMemberRequest 读者注册请求
type RegisterMemberRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// RegisterMemberResponse 读者注册响应
// 不返回密码字段
type RegisterMemberResponse struct {
	MemberID uint   `json:"member_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}

// RegisterMemberUseCase 读者注册用例
type RegisterMemberUseCase struct {
	memberService member.Service
	clock         clock.Clock
}

// NewRegisterMemberUseCase 创建注册用例
func NewRegisterMemberUseCase(memberService member.Service, clk clock.Clock) *RegisterMemberUseCase {
	return &RegisterMemberUseCase{memberService: memberService, clock: clk}
}

// Execute 执行注册
func (uc *RegisterMemberUseCase) Execute(ctx context.Context, req *RegisterMemberRequest) (*RegisterMemberResponse, error) {
	m, err := uc.memberService.RegisterMember(ctx,
		req.Email, req.Password, req.FullName, req.Phone, req.Address, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	return &RegisterMemberResponse{
		MemberID: m.ID,
		Email:    m.Email,
		FullName: m.FullName,
		Status:   string(m.Status),
	}, nil
}
