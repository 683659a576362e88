package catalog

import (
	"context"
)

// Repository 图书目录仓储接口
// 设计说明：
// 1. 接口定义在domain层，实现在infrastructure/persistence/database
// 2. 三个搜索方法接收已经带通配符的模式（如%Potter%），按库的排序规则做LIKE匹配
// 3. 搜索结果不排序，按库的自然顺序返回，最多limit条
type Repository interface {
	// SearchByTitle 按书名模糊匹配
	SearchByTitle(ctx context.Context, pattern string, limit int) ([]*BookView, error)

	// SearchByISBN 按ISBN模糊匹配
	SearchByISBN(ctx context.Context, pattern string, limit int) ([]*BookView, error)

	// SearchByAuthor 按作者名模糊匹配
	SearchByAuthor(ctx context.Context, pattern string, limit int) ([]*BookView, error)

	// FindByID 按主键精确查询
	// 不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*BookView, error)

	// FindByISBN 按ISBN精确查询
	// 不存在时返回ErrISBNNotFound
	FindByISBN(ctx context.Context, isbn string) (*BookView, error)

	// Exists 判断图书是否存在（写书评前校验）
	Exists(ctx context.Context, id uint) (bool, error)
}

// Loader 目录导入接口
// 在一个事务内写入去重后的作者和图书
type Loader interface {
	Load(ctx context.Context, entries []Entry) (*LoadResult, error)
}

// Cache 目录缓存接口（Cache-Aside）
// 目录导入后不再变化，缓存只依赖TTL过期
// 未命中时返回(nil, nil)
type Cache interface {
	GetBook(ctx context.Context, id uint) (*BookView, error)
	SetBook(ctx context.Context, book *BookView) error
	GetSearch(ctx context.Context, criteria Criteria, query string) ([]*BookView, error)
	SetSearch(ctx context.Context, criteria Criteria, query string, books []*BookView) error
}

// NoopCache 未启用Redis时使用的空缓存
type NoopCache struct{}

func (NoopCache) GetBook(context.Context, uint) (*BookView, error) { return nil, nil }
func (NoopCache) SetBook(context.Context, *BookView) error         { return nil }
func (NoopCache) GetSearch(context.Context, Criteria, string) ([]*BookView, error) {
	return nil, nil
}
func (NoopCache) SetSearch(context.Context, Criteria, string, []*BookView) error { return nil }
