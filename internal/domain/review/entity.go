package review

import (
	"time"
)

// 评分范围
const (
	MinRating = 1
	MaxRating = 5

	// percentPerPoint 展示时评分换算为百分比（3分 → 60）
	percentPerPoint = 20
)

// Review 书评实体
// 书评是只追加的历史记录：同一用户对同一本书可以多次提交，每次都是新的一行
type Review struct {
	ID        uint
	BookID    uint
	UserID    uint
	Rating    int // 1..5
	Text      string
	CreatedOn time.Time // 由数据库在插入时赋值
}

// NewReview 创建书评（工厂方法）
func NewReview(bookID, userID uint, rating int, text string) (*Review, error) {
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	return &Review{
		BookID: bookID,
		UserID: userID,
		Rating: rating,
		Text:   text,
	}, nil
}

// ValidateRating 评分必须在1到5之间
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// RatingPercent 评分换算为百分比
func RatingPercent(rating int) int {
	return rating * percentPerPoint
}

// View 转换为展示视图
func (r *Review) View() *ReviewView {
	return &ReviewView{
		Text:      r.Text,
		CreatedOn: r.CreatedOn,
		Rating:    RatingPercent(r.Rating),
	}
}

// ReviewView 书评展示视图
// Rating是百分比（0..100），不是原始评分
type ReviewView struct {
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"created_on"`
	Rating    int       `json:"rating"`
}

// CreatedEvent 书评创建事件（发布到消息队列）
type CreatedEvent struct {
	ReviewID  uint      `json:"review_id"`
	BookID    uint      `json:"book_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	CreatedOn time.Time `json:"created_on"`
}

// RoutingKeyCreated 书评创建事件的路由键
const RoutingKeyCreated = "review.created"
