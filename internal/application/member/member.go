// Package member 读者与馆员账户用例
package member

import "context"

// TxManager 事务管理接口
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
