package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/database
// 3. 便于单元测试（Mock此接口）
type Repository interface {
	// Create 创建用户
	// 用户名已存在（唯一索引冲突）时返回ErrUsernameTaken
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ListByUsername 返回用户名匹配的所有行（没有时返回空切片）
	// 登录校验要求恰好一行匹配，所以这里不能用First
	ListByUsername(ctx context.Context, username string) ([]*User, error)
}
