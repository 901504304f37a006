package member

import (
	"context"

	"github.com/xiebiao/library/internal/domain/member"
)

// CreateLibrarianRequest 创建馆员请求(管理员操作)
type CreateLibrarianRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LibrarianItem 馆员列表项
type LibrarianItem struct {
	LibrarianID uint   `json:"librarian_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
}

// ManageLibrariansUseCase 馆员账户管理用例
type ManageLibrariansUseCase struct {
	memberService member.Service
	memberRepo    member.Repository
}

// NewManageLibrariansUseCase 创建馆员管理用例
func NewManageLibrariansUseCase(memberService member.Service, memberRepo member.Repository) *ManageLibrariansUseCase {
	return &ManageLibrariansUseCase{memberService: memberService, memberRepo: memberRepo}
}

// Create 创建馆员账户
func (uc *ManageLibrariansUseCase) Create(ctx context.Context, req *CreateLibrarianRequest) (*LibrarianItem, error) {
	l, err := uc.memberService.CreateLibrarian(ctx,
		req.Email, req.Password, req.FullName, member.Role(req.Role))
	if err != nil {
		return nil, err
	}
	return toLibrarianItem(l), nil
}

// List 馆员列表
func (uc *ManageLibrariansUseCase) List(ctx context.Context) ([]LibrarianItem, error) {
	librarians, err := uc.memberRepo.ListLibrarians(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]LibrarianItem, 0, len(librarians))
	for _, l := range librarians {
		items = append(items, *toLibrarianItem(l))
	}
	return items, nil
}

// Delete 删除馆员账户
func (uc *ManageLibrariansUseCase) Delete(ctx context.Context, librarianID uint) error {
	if _, err := uc.memberRepo.FindLibrarianByID(ctx, librarianID); err != nil {
		return err
	}
	return uc.memberRepo.DeleteLibrarian(ctx, librarianID)
}

func toLibrarianItem(l *member.Librarian) *LibrarianItem {
	return &LibrarianItem{
		LibrarianID: l.ID,
		Email:       l.Email,
		FullName:    l.FullName,
		Role:        string(l.Role),
		IsActive:    l.IsActive,
	}
}
