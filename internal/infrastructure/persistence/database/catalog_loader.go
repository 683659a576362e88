package database

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
)

// loadBatchSize 批量插入每批的行数
const loadBatchSize = 500

// catalogLoader 目录导入实现
// 设计说明:
// 1. 一个事务内先写作者再写图书，失败时整体回滚
// 2. 作者按名字去重，已存在的作者直接复用
// 3. 已存在的ISBN（包括同一批里重复的）跳过，重复导入是安全的
type catalogLoader struct {
	db *gorm.DB
}

// NewCatalogLoader 创建目录导入器
func NewCatalogLoader(db *gorm.DB) catalog.Loader {
	return &catalogLoader{db: db}
}

func (l *catalogLoader) Load(ctx context.Context, entries []catalog.Entry) (*catalog.LoadResult, error) {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	result := &catalog.LoadResult{}
	err := getDB(ctx, l.db).Transaction(func(tx *gorm.DB) error {
		// 1. 作者去重
		authorIDs, created, err := l.loadAuthors(tx, entries)
		if err != nil {
			return err
		}
		result.Authors = created

		// 2. 跳过已存在的ISBN
		known, err := existingISBNs(tx)
		if err != nil {
			return err
		}

		books := make([]BookModel, 0, len(entries))
		for _, e := range entries {
			isbn := strings.TrimSpace(e.ISBN)
			if known[isbn] {
				continue
			}
			known[isbn] = true
			books = append(books, BookModel{
				ISBN:      isbn,
				Title:     strings.TrimSpace(e.Title),
				Published: e.Published,
				AuthorID:  authorIDs[strings.TrimSpace(e.Author)],
			})
		}

		// 3. 批量插入图书
		if len(books) > 0 {
			if err := tx.CreateInBatches(&books, loadBatchSize).Error; err != nil {
				return err
			}
		}
		result.Books = len(books)
		return nil
	})
	if err != nil {
		return nil, catalog.ErrStoreFailure.WithCause(err)
	}

	return result, nil
}

// loadAuthors 返回作者名 → ID，以及新建的作者数
func (l *catalogLoader) loadAuthors(tx *gorm.DB, entries []catalog.Entry) (map[string]uint, int, error) {
	var existing []AuthorModel
	if err := tx.Find(&existing).Error; err != nil {
		return nil, 0, err
	}

	ids := make(map[string]uint, len(existing))
	for _, a := range existing {
		ids[a.Name] = a.ID
	}

	var fresh []AuthorModel
	seen := make(map[string]bool)
	for _, e := range entries {
		name := strings.TrimSpace(e.Author)
		if _, ok := ids[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		fresh = append(fresh, AuthorModel{Name: name})
	}

	if len(fresh) > 0 {
		if err := tx.CreateInBatches(&fresh, loadBatchSize).Error; err != nil {
			return nil, 0, err
		}
		for _, a := range fresh {
			ids[a.Name] = a.ID
		}
	}

	return ids, len(fresh), nil
}

func existingISBNs(tx *gorm.DB) (map[string]bool, error) {
	var isbns []string
	if err := tx.Model(&BookModel{}).Pluck("isbn", &isbns).Error; err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(isbns))
	for _, isbn := range isbns {
		known[isbn] = true
	}
	return known, nil
}
