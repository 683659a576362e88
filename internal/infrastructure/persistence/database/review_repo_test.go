package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
)

func TestReviewRepository(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	ctx := context.Background()

	users := NewUserRepository(db)
	alice := user.NewUser("alice", "wonderland")
	require.NoError(t, users.Create(ctx, alice))
	bob := user.NewUser("bob1", "builder1")
	require.NoError(t, users.Create(ctx, bob))

	repo := NewReviewRepository(db)

	first := &review.Review{BookID: 1, UserID: alice.ID, Rating: 3, Text: "first"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedOn.IsZero(), "插入时应该赋值created_on")

	second := &review.Review{BookID: 1, UserID: alice.ID, Rating: 5, Text: "second"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	stored, err := repo.FindFirstByBookAndUsername(ctx, 1, "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, first.CreatedOn, stored.CreatedOn, time.Second)

	t.Run("同一用户同一本书可以有多条，第一条按插入顺序", func(t *testing.T) {
		got, err := repo.FindFirstByBookAndUsername(ctx, 1, "alice")
		require.NoError(t, err)
		assert.Equal(t, "first", got.Text)
		assert.Equal(t, 3, got.Rating)

		all, err := repo.ListByBookAndUsername(ctx, 1, "alice")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, []string{"first", "second"}, []string{all[0].Text, all[1].Text})
	})

	t.Run("按用户名隔离", func(t *testing.T) {
		_, err := repo.FindFirstByBookAndUsername(ctx, 1, "bob1")
		assert.ErrorIs(t, err, review.ErrReviewNotFound)

		all, err := repo.ListByBookAndUsername(ctx, 1, "bob1")
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

// TestReviewScenario Jane Doe / alice 完整流程
func TestReviewScenario(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := NewCatalogLoader(db).Load(ctx, []catalog.Entry{
		{ISBN: "0001", Title: "Sample", Author: "Jane Doe", Published: 2000},
	})
	require.NoError(t, err)

	books := NewCatalogRepository(db)
	catalogSvc := catalog.NewService(books, catalog.SearchLimit)

	found, err := catalogSvc.SearchByTitle(ctx, "%Sam%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Sample", found[0].Title)
	assert.Equal(t, "Jane Doe", found[0].Author)
	bookID := found[0].ID

	tx := NewTxManager(db)
	users := NewUserRepository(db)
	_, err = user.NewService(users, tx, user.NewPlainScheme()).Register(ctx, "alice", "wonderland", "wonderland")
	require.NoError(t, err)

	reviews := review.NewService(NewReviewRepository(db), users, books, tx)

	_, err = reviews.GetReviewForUser(ctx, bookID, "alice")
	assert.ErrorIs(t, err, review.ErrReviewNotFound)

	_, err = reviews.AddReview(ctx, bookID, 4, "Good", "alice")
	require.NoError(t, err)

	view, err := reviews.GetReviewForUser(ctx, bookID, "alice")
	require.NoError(t, err)
	assert.Equal(t, 80, view.Rating)
	assert.Equal(t, "Good", view.Text)

	t.Run("图书不存在时回滚", func(t *testing.T) {
		_, err := reviews.AddReview(ctx, 404, 4, "Missing", "alice")
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)

		var count int64
		require.NoError(t, db.Model(&ReviewModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}
