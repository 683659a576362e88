package review

import (
	"context"
)

// Repository 书评仓储接口
type Repository interface {
	// Create 插入新书评（从不更新已有行），回填ID和CreatedOn
	Create(ctx context.Context, review *Review) error

	// FindFirstByBookAndUsername 按插入顺序返回该用户对该书的第一条书评
	// 没有时返回ErrReviewNotFound
	FindFirstByBookAndUsername(ctx context.Context, bookID uint, username string) (*Review, error)

	// ListByBookAndUsername 按插入顺序返回该用户对该书的全部书评（没有时返回空切片）
	ListByBookAndUsername(ctx context.Context, bookID uint, username string) ([]*Review, error)
}
