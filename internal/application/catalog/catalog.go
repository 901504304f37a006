// Package catalog 编目用例:书目与馆藏副本的维护
//
// 编目是馆员侧操作:建立书目、登记/下架副本、从Google Books导入元数据。
// 删除操作带业务校验(副本在流通中、书目仍有排队预约等),
// 校验在用例层完成,仓储只做纯粹的数据访问。
package catalog

import "context"

// TxManager 事务管理接口
// 由infrastructure/persistence/mysql.TxManager实现,测试时可用桩替代
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
