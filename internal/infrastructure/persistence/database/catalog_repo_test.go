package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
)

func TestCatalogRepository_Search(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	tests := []struct {
		name    string
		search  func(context.Context, string, int) ([]*catalog.BookView, error)
		pattern string
		want    []string
	}{
		{"书名子串", repo.SearchByTitle, "%Dark%", []string{"The Dark Is Rising"}},
		{"书名大小写不敏感", repo.SearchByTitle, "%dune%", []string{"Dune"}},
		{"ISBN子串", repo.SearchByISBN, "%55329%", []string{"Foundation"}},
		{"作者子串", repo.SearchByAuthor, "%Asimov%", []string{"I, Robot", "Foundation"}},
		{"没有匹配", repo.SearchByTitle, "%Hobbit%", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := tt.search(ctx, tt.pattern, catalog.SearchLimit)
			require.NoError(t, err)
			require.NotNil(t, books)

			titles := make([]string, 0, len(books))
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}

func TestCatalogRepository_SearchJoinsAuthor(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewCatalogRepository(db)

	books, err := repo.SearchByISBN(context.Background(), "%0441172717%", catalog.SearchLimit)
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.Equal(t, 1965, books[0].Published)
	assert.NotZero(t, books[0].ID)
}

func TestCatalogRepository_SearchLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	entries := make([]catalog.Entry, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, catalog.Entry{
			ISBN:      fmt.Sprintf("9%09d", i),
			Title:     fmt.Sprintf("Volume %d", i),
			Author:    "Serial Writer",
			Published: 2000 + i,
		})
	}
	_, err := NewCatalogLoader(db).Load(ctx, entries)
	require.NoError(t, err)

	repo := NewCatalogRepository(db)
	books, err := repo.SearchByAuthor(ctx, "%Writer%", catalog.SearchLimit)
	require.NoError(t, err)
	assert.Len(t, books, catalog.SearchLimit)

	// 空查询匹配全部，仍受上限约束
	books, err = repo.SearchByTitle(ctx, catalog.ContainsPattern(""), catalog.SearchLimit)
	require.NoError(t, err)
	assert.Len(t, books, catalog.SearchLimit)
}

func TestCatalogRepository_FindByID(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	found, err := repo.SearchByTitle(ctx, "%Twilight%", catalog.SearchLimit)
	require.NoError(t, err)
	require.Len(t, found, 1)

	t.Run("存在", func(t *testing.T) {
		b, err := repo.FindByID(ctx, found[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Twilight", b.Title)
		assert.Equal(t, "Stephenie Meyer", b.Author)

		ok, err := repo.Exists(ctx, found[0].ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("不存在返回未找到而不是存储故障", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)

		ok, err := repo.Exists(ctx, 9999)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCatalogRepository_FindByISBN(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewCatalogRepository(db)
	ctx := context.Background()

	b, err := repo.FindByISBN(ctx, "0380795272")
	require.NoError(t, err)
	assert.Equal(t, &catalog.ISBNLookup{
		Title:  "Krondor: The Betrayal",
		Author: "Raymond E. Feist",
		Year:   1998,
		ISBN:   "0380795272",
	}, b.ToISBNLookup())

	// 精确匹配，子串不算
	_, err = repo.FindByISBN(ctx, "038079")
	assert.ErrorIs(t, err, catalog.ErrISBNNotFound)
}

func TestCatalogLoader(t *testing.T) {
	db := newTestDB(t)
	loader := NewCatalogLoader(db)
	ctx := context.Background()

	t.Run("作者去重", func(t *testing.T) {
		res, err := loader.Load(ctx, []catalog.Entry{
			{ISBN: "0553803700", Title: "I, Robot", Author: "Isaac Asimov", Published: 1950},
			{ISBN: "0553293354", Title: "Foundation", Author: "Isaac Asimov", Published: 1951},
			{ISBN: "0553293354", Title: "Foundation", Author: "Isaac Asimov", Published: 1951},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Authors)
		assert.Equal(t, 2, res.Books)
	})

	t.Run("重复导入跳过已有数据", func(t *testing.T) {
		res, err := loader.Load(ctx, []catalog.Entry{
			{ISBN: "0553293354", Title: "Foundation", Author: "Isaac Asimov", Published: 1951},
			{ISBN: "0441172717", Title: "Dune", Author: "Frank Herbert", Published: 1965},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Authors)
		assert.Equal(t, 1, res.Books)

		var authors int64
		require.NoError(t, db.Model(&AuthorModel{}).Count(&authors).Error)
		assert.Equal(t, int64(2), authors)
	})

	t.Run("非法行整体拒绝", func(t *testing.T) {
		_, err := loader.Load(ctx, []catalog.Entry{
			{ISBN: "0316015849", Title: "Twilight", Author: "Stephenie Meyer", Published: 2005},
			{ISBN: "0000000000", Title: "Anonymous", Author: " ", Published: 2000},
		})
		require.Error(t, err)

		_, err = NewCatalogRepository(db).FindByISBN(ctx, "0316015849")
		assert.ErrorIs(t, err, catalog.ErrISBNNotFound)
	})
}
