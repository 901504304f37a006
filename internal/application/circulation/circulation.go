// Package circulation 流通用例:借出、归还、续借、挂失
//
// 设计说明:
//  1. 应用层负责用例编排:前置校验、领域状态流转、仓储持久化
//  2. 每个用例的全部写操作包在一个事务里,要么全成功要么全失败
//     (借阅已创建但副本状态没改,就是不变式被破坏)
//  3. 借期、上限、费率从CirculationConfig注入,不写死字面量
//  4. 时间从clock.Clock注入,测试时用固定时钟推演逾期场景
package circulation

import (
	"context"
)

// TxManager 事务管理接口
// 由infrastructure/persistence/mysql.TxManager实现,测试时用直通假实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
