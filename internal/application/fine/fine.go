// Package fine 罚款用例:每日计提扫描、缴纳、查询
package fine

import (
	"context"
)

// TxManager 事务管理接口
// 由infrastructure/persistence/mysql.TxManager实现,测试时用直通假实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
