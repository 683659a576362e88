package catalog

import (
	"strings"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// SearchLimit 单次搜索最多返回的条数
const SearchLimit = 20

// Author 作者实体
// 由目录导入创建，之后不可变
type Author struct {
	ID   uint
	Name string
}

// Book 图书实体
// 由目录导入创建，之后不可变
type Book struct {
	ID        uint
	ISBN      string
	Title     string
	Published int // 出版年份
	AuthorID  uint
}

// BookView 图书查询视图（books JOIN authors）
// 所有读操作都返回这个结构，不暴露数据库行类型
type BookView struct {
	ID        uint   `json:"id"`
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Published int    `json:"published"`
	Author    string `json:"author"`
}

// ISBNLookup 对外ISBN接口的投影（不包含目录ID）
type ISBNLookup struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	ISBN   string `json:"isbn"`
}

// ToISBNLookup 投影为对外ISBN接口结构
func (v *BookView) ToISBNLookup() *ISBNLookup {
	return &ISBNLookup{
		Title:  v.Title,
		Author: v.Author,
		Year:   v.Published,
		ISBN:   v.ISBN,
	}
}

// Criteria 搜索条件
type Criteria string

const (
	CriteriaTitle  Criteria = "title"
	CriteriaISBN   Criteria = "isbn"
	CriteriaAuthor Criteria = "author"
)

// ParseCriteria 解析搜索条件（大小写不敏感）
func ParseCriteria(s string) (Criteria, error) {
	switch c := Criteria(strings.ToLower(strings.TrimSpace(s))); c {
	case CriteriaTitle, CriteriaISBN, CriteriaAuthor:
		return c, nil
	default:
		return "", ErrInvalidCriteria
	}
}

// ContainsPattern 把原始查询包装成子串匹配模式（%query%）
// 查询里的%和_保持通配符语义，与原有搜索行为一致
func ContainsPattern(query string) string {
	return "%" + query + "%"
}

// Entry 目录导入的一行（isbn,title,author,published）
type Entry struct {
	ISBN      string
	Title     string
	Author    string
	Published int
}

// Validate 导入行校验
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Author) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "author name must not be empty")
	}
	if strings.TrimSpace(e.ISBN) == "" || strings.TrimSpace(e.Title) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "isbn and title must not be empty")
	}
	return nil
}

// LoadResult 导入结果
type LoadResult struct {
	Authors int // 新建的作者数
	Books   int // 新建的图书数
}
