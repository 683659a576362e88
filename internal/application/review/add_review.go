package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

const tracerName = "application/review"

// EventPublisher 领域事件发布
// 启用消息队列时由mq.Publisher实现，否则使用NoopPublisher
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// NoopPublisher 不发布任何事件
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// AddReviewUseCase 提交书评用例
// 设计说明:
// 1. 写入由领域服务在一个事务内完成
// 2. 写入成功后发布review.created事件，发布失败只记录日志，不回滚书评
type AddReviewUseCase struct {
	reviewService review.Service
	publisher     EventPublisher
}

// NewAddReviewUseCase 创建提交书评用例
func NewAddReviewUseCase(reviewService review.Service, publisher EventPublisher) *AddReviewUseCase {
	return &AddReviewUseCase{
		reviewService: reviewService,
		publisher:     publisher,
	}
}

// AddReviewRequest 提交书评请求DTO
type AddReviewRequest struct {
	BookID   uint
	Rating   int
	Text     string
	Username string // 会话中的用户名，未登录为空
}

// AddReviewResponse 提交书评响应DTO
type AddReviewResponse struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"book_id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"` // 百分比
	CreatedOn time.Time `json:"created_on"`
}

// Execute 执行提交
func (uc *AddReviewUseCase) Execute(ctx context.Context, req AddReviewRequest) (resp *AddReviewResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "AddReview")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.IncCounterVec(metrics.ReviewsTotal, map[string]string{"result": metrics.ResultOfAppError(err)})
	}()

	// 1. 写入书评
	r, err := uc.reviewService.AddReview(ctx, req.BookID, req.Rating, req.Text, req.Username)
	if err != nil {
		return nil, err
	}

	// 2. 发布事件
	event := review.CreatedEvent{
		ReviewID:  r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Username:  req.Username,
		Rating:    r.Rating,
		CreatedOn: r.CreatedOn,
	}
	if err := uc.publisher.Publish(ctx, review.RoutingKeyCreated, event); err != nil {
		slog.WarnContext(ctx, "publish review event failed",
			slog.Uint64("review_id", uint64(r.ID)),
			slog.Any("error", err),
		)
	}

	view := r.View()
	return &AddReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		Text:      view.Text,
		Rating:    view.Rating,
		CreatedOn: view.CreatedOn,
	}, nil
}
