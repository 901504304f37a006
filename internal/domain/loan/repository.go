package loan

import (
	"context"
	"time"
)

// Repository 借阅仓储接口
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, l *Loan) error

	// FindByID 根据ID查找借阅
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// FindActiveByBarcode 查找某副本当前进行中的借阅
	// 不变式:至多一条(归还、挂失入口)
	FindActiveByBarcode(ctx context.Context, barcode string) (*Loan, error)

	// CountActiveByMember 读者进行中的借阅数量(借阅上限校验)
	CountActiveByMember(ctx context.Context, memberID uint) (int64, error)

	// HasActiveLoanForBook 读者是否借有某书目的任一副本
	// 用途:预约前校验"已借有此书须先归还"
	HasActiveLoanForBook(ctx context.Context, memberID, bookID uint) (bool, error)

	// ListActiveOverdue 截至before已逾期且仍在借的借阅(罚款计提扫描)
	ListActiveOverdue(ctx context.Context, before time.Time) ([]*Loan, error)

	// ListByMember 读者的借阅记录(按状态过滤,status为空则不过滤)
	ListByMember(ctx context.Context, memberID uint, status Status) ([]*Loan, error)

	// ListByBarcode 某副本的借阅历史(按借出时间倒序)
	ListByBarcode(ctx context.Context, barcode string) ([]*Loan, error)

	// Update 更新借阅(关闭、续借)
	Update(ctx context.Context, l *Loan) error
}
