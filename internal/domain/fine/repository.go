package fine

import (
	"context"
)

// Repository 罚款仓储接口
type Repository interface {
	// Create 开单
	Create(ctx context.Context, f *Fine) error

	// FindByID 根据ID查找罚款
	FindByID(ctx context.Context, id uint) (*Fine, error)

	// FindOverdueByLoan 查找某借阅的逾期罚款
	// 不变式:一条借阅至多一条Overdue罚款;不存在时返回(nil, nil)
	FindOverdueByLoan(ctx context.Context, loanID uint) (*Fine, error)

	// SumOutstandingByMember 读者欠费总额(Unpaid/Partial的amount-amount_paid之和)
	SumOutstandingByMember(ctx context.Context, memberID uint) (float64, error)

	// CountUnsettledByMember 读者未结清罚款笔数(删除读者前校验)
	CountUnsettledByMember(ctx context.Context, memberID uint) (int64, error)

	// ListByMember 读者的罚款记录(settledOnly=false时仅返回未结清的)
	ListByMember(ctx context.Context, memberID uint, includeSettled bool) ([]*Fine, error)

	// Update 更新罚款(缴纳、重新核定)
	Update(ctx context.Context, f *Fine) error
}
