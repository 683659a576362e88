package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
)

// catalogRepository 图书目录仓储实现
// 设计说明:
// 1. 实现domain/catalog/repository.go定义的接口
// 2. 所有查询都是books JOIN authors，直接扫描到bookRow再转换为BookView
// 3. LIKE的大小写敏感性由数据库排序规则决定（sqlite对ASCII不敏感）
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建图书目录仓储
func NewCatalogRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository{db: db}
}

// bookRow books JOIN authors的查询结果
type bookRow struct {
	ID        uint   `gorm:"column:id"`
	ISBN      string `gorm:"column:isbn"`
	Title     string `gorm:"column:title"`
	Published int    `gorm:"column:published"`
	Author    string `gorm:"column:author"`
}

func (r *catalogRepository) SearchByTitle(ctx context.Context, pattern string, limit int) ([]*catalog.BookView, error) {
	return r.search(ctx, "books.title", pattern, limit)
}

func (r *catalogRepository) SearchByISBN(ctx context.Context, pattern string, limit int) ([]*catalog.BookView, error) {
	return r.search(ctx, "books.isbn", pattern, limit)
}

func (r *catalogRepository) SearchByAuthor(ctx context.Context, pattern string, limit int) ([]*catalog.BookView, error) {
	return r.search(ctx, "authors.name", pattern, limit)
}

// search 模糊匹配某一列
// column只来自上面三个固定值，pattern通过占位符传入
func (r *catalogRepository) search(ctx context.Context, column, pattern string, limit int) ([]*catalog.BookView, error) {
	var rows []bookRow
	err := r.bookQuery(ctx).
		Where(column+" LIKE ?", pattern).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, catalog.ErrStoreFailure.WithCause(err)
	}

	books := make([]*catalog.BookView, 0, len(rows))
	for i := range rows {
		books = append(books, toBookView(&rows[i]))
	}
	return books, nil
}

// FindByID 按主键查询
func (r *catalogRepository) FindByID(ctx context.Context, id uint) (*catalog.BookView, error) {
	var row bookRow
	err := r.bookQuery(ctx).Where("books.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, catalog.ErrStoreFailure.WithCause(err)
	}
	return toBookView(&row), nil
}

// FindByISBN 按ISBN精确查询
func (r *catalogRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.BookView, error) {
	var row bookRow
	err := r.bookQuery(ctx).Where("books.isbn = ?", isbn).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrISBNNotFound
		}
		return nil, catalog.ErrStoreFailure.WithCause(err)
	}
	return toBookView(&row), nil
}

// Exists 判断图书是否存在
func (r *catalogRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, catalog.ErrStoreFailure.WithCause(err)
	}
	return count > 0, nil
}

// bookQuery books JOIN authors的基础查询
func (r *catalogRepository) bookQuery(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db).
		Table("books").
		Select("books.id, books.isbn, books.title, books.published, authors.name AS author").
		Joins("JOIN authors ON authors.id = books.author_id")
}

// toBookView 查询结果 → 领域视图
func toBookView(row *bookRow) *catalog.BookView {
	return &catalog.BookView{
		ID:        row.ID,
		ISBN:      row.ISBN,
		Title:     row.Title,
		Published: row.Published,
		Author:    row.Author,
	}
}
