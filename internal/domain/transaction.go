// Package domain 放置各领域包共用的抽象
package domain

import "context"

// Transactor 事务执行器
// fn内通过ctx调用的仓储方法都在同一事务中执行；fn返回error时回滚，返回nil时提交
// 实现：infrastructure/persistence/database.TxManager
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
