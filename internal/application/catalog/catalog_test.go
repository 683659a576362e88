package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/review"
)

var books = []*catalog.BookView{
	{ID: 1, ISBN: "0441172717", Title: "Dune", Published: 1965, Author: "Frank Herbert"},
	{ID: 2, ISBN: "0553293354", Title: "Foundation", Published: 1951, Author: "Isaac Asimov"},
}

// memoryRepository 按子串匹配的目录仓储，记录查询次数
type memoryRepository struct {
	queries int
}

func (m *memoryRepository) match(field func(*catalog.BookView) string, pattern string, limit int) ([]*catalog.BookView, error) {
	m.queries++
	needle := strings.ToLower(strings.Trim(pattern, "%"))
	var result []*catalog.BookView
	for _, b := range books {
		if strings.Contains(strings.ToLower(field(b)), needle) && len(result) < limit {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *memoryRepository) SearchByTitle(_ context.Context, p string, limit int) ([]*catalog.BookView, error) {
	return m.match(func(b *catalog.BookView) string { return b.Title }, p, limit)
}

func (m *memoryRepository) SearchByISBN(_ context.Context, p string, limit int) ([]*catalog.BookView, error) {
	return m.match(func(b *catalog.BookView) string { return b.ISBN }, p, limit)
}

func (m *memoryRepository) SearchByAuthor(_ context.Context, p string, limit int) ([]*catalog.BookView, error) {
	return m.match(func(b *catalog.BookView) string { return b.Author }, p, limit)
}

func (m *memoryRepository) FindByID(_ context.Context, id uint) (*catalog.BookView, error) {
	m.queries++
	for _, b := range books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, catalog.ErrBookNotFound
}

func (m *memoryRepository) FindByISBN(_ context.Context, isbn string) (*catalog.BookView, error) {
	for _, b := range books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, catalog.ErrISBNNotFound
}

func (m *memoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := m.FindByID(ctx, id)
	return err == nil, nil
}

// mapCache 内存缓存
type mapCache struct {
	books    map[uint]*catalog.BookView
	searches map[string][]*catalog.BookView
	failGet  bool
}

func newMapCache() *mapCache {
	return &mapCache{books: map[uint]*catalog.BookView{}, searches: map[string][]*catalog.BookView{}}
}

func (c *mapCache) GetBook(_ context.Context, id uint) (*catalog.BookView, error) {
	if c.failGet {
		return nil, errors.New("circuit breaker is open")
	}
	return c.books[id], nil
}

func (c *mapCache) SetBook(_ context.Context, b *catalog.BookView) error {
	c.books[b.ID] = b
	return nil
}

func (c *mapCache) GetSearch(_ context.Context, criteria catalog.Criteria, q string) ([]*catalog.BookView, error) {
	if c.failGet {
		return nil, errors.New("circuit breaker is open")
	}
	return c.searches[string(criteria)+":"+q], nil
}

func (c *mapCache) SetSearch(_ context.Context, criteria catalog.Criteria, q string, b []*catalog.BookView) error {
	c.searches[string(criteria)+":"+q] = b
	return nil
}

// fakeReviews alice对图书1有一条3分的书评
type fakeReviews struct{}

func (fakeReviews) GetReviewForUser(_ context.Context, bookID uint, username string) (*review.ReviewView, error) {
	if bookID == 1 && username == "alice" {
		return &review.ReviewView{Text: "Spice", Rating: review.RatingPercent(3)}, nil
	}
	return nil, review.ErrReviewNotFound
}

func (fakeReviews) AddReview(context.Context, uint, int, string, string) (*review.Review, error) {
	return nil, errors.New("not used")
}

func (fakeReviews) ListReviewsForUser(context.Context, uint, string) ([]*review.ReviewView, error) {
	return nil, errors.New("not used")
}

func TestSearchBooksUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("按条件搜索，第二次命中缓存", func(t *testing.T) {
		repo := &memoryRepository{}
		uc := NewSearchBooksUseCase(catalog.NewService(repo, catalog.SearchLimit), newMapCache())

		resp, err := uc.Execute(ctx, SearchBooksRequest{Query: "asimov", Criteria: "Author"})
		require.NoError(t, err)
		assert.Equal(t, "author", resp.Criteria)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Foundation", resp.Books[0].Title)

		_, err = uc.Execute(ctx, SearchBooksRequest{Query: "asimov", Criteria: "author"})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.queries)
	})

	t.Run("没有结果返回空切片", func(t *testing.T) {
		uc := NewSearchBooksUseCase(catalog.NewService(&memoryRepository{}, catalog.SearchLimit), catalog.NoopCache{})

		resp, err := uc.Execute(ctx, SearchBooksRequest{Query: "hobbit", Criteria: "title"})
		require.NoError(t, err)
		assert.NotNil(t, resp.Books)
		assert.Zero(t, resp.Count)
	})

	t.Run("不支持的条件", func(t *testing.T) {
		uc := NewSearchBooksUseCase(catalog.NewService(&memoryRepository{}, catalog.SearchLimit), catalog.NoopCache{})

		_, err := uc.Execute(ctx, SearchBooksRequest{Query: "dune", Criteria: "publisher"})
		assert.ErrorIs(t, err, catalog.ErrInvalidCriteria)
	})

	t.Run("缓存故障时回源数据库", func(t *testing.T) {
		cache := newMapCache()
		cache.failGet = true
		uc := NewSearchBooksUseCase(catalog.NewService(&memoryRepository{}, catalog.SearchLimit), cache)

		resp, err := uc.Execute(ctx, SearchBooksRequest{Query: "dune", Criteria: "title"})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Count)
	})
}

func TestGetBookUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("带当前用户的书评", func(t *testing.T) {
		repo := &memoryRepository{}
		cache := newMapCache()
		uc := NewGetBookUseCase(catalog.NewService(repo, catalog.SearchLimit), fakeReviews{}, cache)

		resp, err := uc.Execute(ctx, GetBookRequest{BookID: 1, Username: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "Dune", resp.Book.Title)
		require.NotNil(t, resp.Review)
		assert.Equal(t, 60, resp.Review.Rating)

		// 第二次从缓存读取图书
		_, err = uc.Execute(ctx, GetBookRequest{BookID: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.queries)
	})

	t.Run("未登录或没有书评时review为nil", func(t *testing.T) {
		uc := NewGetBookUseCase(catalog.NewService(&memoryRepository{}, catalog.SearchLimit), fakeReviews{}, catalog.NoopCache{})

		resp, err := uc.Execute(ctx, GetBookRequest{BookID: 2})
		require.NoError(t, err)
		assert.Nil(t, resp.Review)
	})

	t.Run("图书不存在", func(t *testing.T) {
		uc := NewGetBookUseCase(catalog.NewService(&memoryRepository{}, catalog.SearchLimit), fakeReviews{}, catalog.NoopCache{})

		_, err := uc.Execute(ctx, GetBookRequest{BookID: 99})
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})
}

func TestLookupISBNUseCase(t *testing.T) {
	uc := NewLookupISBNUseCase(catalog.NewService(&memoryRepository{}, catalog.SearchLimit))

	got, err := uc.Execute(context.Background(), "0441172717")
	require.NoError(t, err)
	assert.Equal(t, &catalog.ISBNLookup{Title: "Dune", Author: "Frank Herbert", Year: 1965, ISBN: "0441172717"}, got)

	_, err = uc.Execute(context.Background(), "0000000000")
	assert.ErrorIs(t, err, catalog.ErrISBNNotFound)
}
