package member

import (
	"context"
)

// Repository 读者/馆员仓储接口
type Repository interface {
	// CreateMember 注册读者
	CreateMember(ctx context.Context, m *Member) error

	// FindMemberByID 根据ID查找读者
	FindMemberByID(ctx context.Context, id uint) (*Member, error)

	// FindMemberByEmail 根据邮箱查找读者(登录用)
	FindMemberByEmail(ctx context.Context, email string) (*Member, error)

	// SearchMembers 按姓名、邮箱或电话模糊查找读者(不区分大小写)
	SearchMembers(ctx context.Context, query string) ([]*Member, error)

	// UpdateMember 更新读者(资料修改、状态变更)
	UpdateMember(ctx context.Context, m *Member) error

	// DeleteMember 删除读者(删除前的业务校验在用例层完成)
	DeleteMember(ctx context.Context, id uint) error

	// CreateLibrarian 创建馆员账户
	CreateLibrarian(ctx context.Context, l *Librarian) error

	// FindLibrarianByID 根据ID查找馆员
	FindLibrarianByID(ctx context.Context, id uint) (*Librarian, error)

	// FindLibrarianByEmail 根据邮箱查找馆员(登录用)
	FindLibrarianByEmail(ctx context.Context, email string) (*Librarian, error)

	// ListLibrarians 馆员列表
	ListLibrarians(ctx context.Context) ([]*Librarian, error)

	// DeleteLibrarian 删除馆员账户
	DeleteLibrarian(ctx context.Context, id uint) error
}
