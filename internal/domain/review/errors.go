package review

import (
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 书评领域错误定义
var (
	// ErrReviewNotFound 该用户对该书没有书评（包括未登录的情况）
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "No review found.")

	// ErrActingUserUnknown 提交书评的用户无法识别（未登录或用户不存在）
	ErrActingUserUnknown = apperrors.New(apperrors.ErrCodeUnauthorized, "Please log in to submit a review.")

	// ErrInvalidRating 评分超出1..5
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidRating, "Rating must be between 1 and 5.")

	// ErrStoreFailure 写入书评时存储层故障
	ErrStoreFailure = apperrors.New(apperrors.ErrCodeDatabaseError, "Something went wrong. We could not add review at this time. Please try again.")
)
