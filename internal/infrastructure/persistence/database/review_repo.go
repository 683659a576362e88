package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookreview/internal/domain/review"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// reviewRepository 书评仓储实现
// 设计说明:
// 1. 只有插入，没有更新和删除
// 2. 按用户名查询时JOIN users，结果按reviews.id（插入顺序）排序
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 插入书评，回填ID和created_on
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID: rv.BookID,
		UserID: rv.UserID,
		Rating: rv.Rating,
		Review: rv.Text,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return err
	}

	rv.ID = model.ID
	rv.CreatedOn = model.CreatedOn
	return nil
}

// FindFirstByBookAndUsername 该用户对该书的第一条书评
func (r *reviewRepository) FindFirstByBookAndUsername(ctx context.Context, bookID uint, username string) (*review.Review, error) {
	var model ReviewModel
	err := r.byBookAndUsername(ctx, bookID, username).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.WrapStore(err, apperrors.ErrDatabaseError.Message)
	}

	return toReviewEntity(&model), nil
}

// ListByBookAndUsername 该用户对该书的全部书评
func (r *reviewRepository) ListByBookAndUsername(ctx context.Context, bookID uint, username string) ([]*review.Review, error) {
	var models []ReviewModel
	if err := r.byBookAndUsername(ctx, bookID, username).Find(&models).Error; err != nil {
		return nil, apperrors.WrapStore(err, apperrors.ErrDatabaseError.Message)
	}

	reviews := make([]*review.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, toReviewEntity(&models[i]))
	}
	return reviews, nil
}

func (r *reviewRepository) byBookAndUsername(ctx context.Context, bookID uint, username string) *gorm.DB {
	return getDB(ctx, r.db).
		Model(&ReviewModel{}).
		Select("reviews.*").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ? AND users.username = ?", bookID, username).
		Order("reviews.id")
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		BookID:    model.BookID,
		UserID:    model.UserID,
		Rating:    model.Rating,
		Text:      model.Review,
		CreatedOn: model.CreatedOn,
	}
}
