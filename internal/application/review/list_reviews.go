package review

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/review"
)

// ListMyReviewsUseCase 当前用户对某本书的书评历史
type ListMyReviewsUseCase struct {
	reviewService review.Service
}

// NewListMyReviewsUseCase 创建书评历史用例
func NewListMyReviewsUseCase(reviewService review.Service) *ListMyReviewsUseCase {
	return &ListMyReviewsUseCase{reviewService: reviewService}
}

// ListMyReviewsResponse 书评历史响应DTO
type ListMyReviewsResponse struct {
	BookID  uint                 `json:"book_id"`
	Reviews []*review.ReviewView `json:"reviews"`
	Count   int                  `json:"count"`
}

// Execute 按插入顺序返回全部书评
func (uc *ListMyReviewsUseCase) Execute(ctx context.Context, bookID uint, username string) (*ListMyReviewsResponse, error) {
	views, err := uc.reviewService.ListReviewsForUser(ctx, bookID, username)
	if err != nil {
		return nil, err
	}
	return &ListMyReviewsResponse{BookID: bookID, Reviews: views, Count: len(views)}, nil
}
