package catalog

import (
	"context"
)

// Service 图书目录领域服务
// 设计说明：
// 1. 只读服务，目录数据由导入工具写入
// 2. 读操作不会因为"没有数据"而失败：搜索返回空切片，单本查询返回ErrBookNotFound
// 3. 只有存储层故障才返回ErrStoreFailure
type Service interface {
	// SearchByTitle 按书名搜索，pattern由调用方加好通配符
	SearchByTitle(ctx context.Context, pattern string) ([]*BookView, error)

	// SearchByISBN 按ISBN搜索
	SearchByISBN(ctx context.Context, pattern string) ([]*BookView, error)

	// SearchByAuthor 按作者搜索
	SearchByAuthor(ctx context.Context, pattern string) ([]*BookView, error)

	// Search 按条件分派搜索，query是用户输入的原始字符串
	Search(ctx context.Context, criteria Criteria, query string) ([]*BookView, error)

	// GetByID 按ID查询
	GetByID(ctx context.Context, id uint) (*BookView, error)

	// GetByISBN 按ISBN精确查询
	GetByISBN(ctx context.Context, isbn string) (*BookView, error)
}

type service struct {
	repo  Repository
	limit int
}

// NewService 创建目录服务
// limit超出1..SearchLimit时按SearchLimit处理
func NewService(repo Repository, limit int) Service {
	if limit <= 0 || limit > SearchLimit {
		limit = SearchLimit
	}
	return &service{repo: repo, limit: limit}
}

func (s *service) SearchByTitle(ctx context.Context, pattern string) ([]*BookView, error) {
	return s.search(ctx, s.repo.SearchByTitle, pattern)
}

func (s *service) SearchByISBN(ctx context.Context, pattern string) ([]*BookView, error) {
	return s.search(ctx, s.repo.SearchByISBN, pattern)
}

func (s *service) SearchByAuthor(ctx context.Context, pattern string) ([]*BookView, error) {
	return s.search(ctx, s.repo.SearchByAuthor, pattern)
}

// Search 按条件分派
// 空查询是合法的：%%匹配全部，仍受条数上限约束
func (s *service) Search(ctx context.Context, criteria Criteria, query string) ([]*BookView, error) {
	pattern := ContainsPattern(query)

	switch criteria {
	case CriteriaTitle:
		return s.SearchByTitle(ctx, pattern)
	case CriteriaISBN:
		return s.SearchByISBN(ctx, pattern)
	case CriteriaAuthor:
		return s.SearchByAuthor(ctx, pattern)
	default:
		return nil, ErrInvalidCriteria
	}
}

func (s *service) GetByID(ctx context.Context, id uint) (*BookView, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByISBN(ctx context.Context, isbn string) (*BookView, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// search 执行搜索并保证结果不超过上限
func (s *service) search(ctx context.Context, fn func(context.Context, string, int) ([]*BookView, error), pattern string) ([]*BookView, error) {
	books, err := fn(ctx, pattern, s.limit)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*BookView{}
	}
	if len(books) > s.limit {
		books = books[:s.limit]
	}
	return books, nil
}
