package review

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookreview/internal/domain"
	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// UserLookup 把会话中的用户名解析为用户（user.Repository实现了它）
type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// BookLookup 判断图书是否存在（catalog.Repository实现了它）
type BookLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// Service 书评领域服务
// 设计说明：
// 1. 策略：书评是只追加的历史，详情页展示按插入顺序的第一条
// 2. 读操作在"没有书评"时返回ErrReviewNotFound，不会失败
// 3. 写操作的失败带有可区分的类别（未识别用户、图书不存在、评分非法、存储故障）
type Service interface {
	// GetReviewForUser 查询用户对某本书的书评（评分已换算为百分比）
	// username为空（未登录）时直接返回ErrReviewNotFound，不访问数据库
	GetReviewForUser(ctx context.Context, bookID uint, username string) (*ReviewView, error)

	// AddReview 以actingUser的身份提交书评
	// 在一个事务中：解析用户 → 校验图书存在 → 校验评分 → 插入
	AddReview(ctx context.Context, bookID uint, rating int, text, actingUser string) (*Review, error)

	// ListReviewsForUser 用户对某本书的全部书评（按插入顺序）
	ListReviewsForUser(ctx context.Context, bookID uint, username string) ([]*ReviewView, error)
}

type service struct {
	repo  Repository
	users UserLookup
	books BookLookup
	tx    domain.Transactor
}

// NewService 创建书评服务
func NewService(repo Repository, users UserLookup, books BookLookup, tx domain.Transactor) Service {
	return &service{repo: repo, users: users, books: books, tx: tx}
}

func (s *service) GetReviewForUser(ctx context.Context, bookID uint, username string) (*ReviewView, error) {
	if username == "" {
		return nil, ErrReviewNotFound
	}

	r, err := s.repo.FindFirstByBookAndUsername(ctx, bookID, username)
	if err != nil {
		return nil, err
	}
	return r.View(), nil
}

func (s *service) ListReviewsForUser(ctx context.Context, bookID uint, username string) ([]*ReviewView, error) {
	if username == "" {
		return []*ReviewView{}, nil
	}

	reviews, err := s.repo.ListByBookAndUsername(ctx, bookID, username)
	if err != nil {
		return nil, err
	}

	views := make([]*ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, r.View())
	}
	return views, nil
}

func (s *service) AddReview(ctx context.Context, bookID uint, rating int, text, actingUser string) (*Review, error) {
	if actingUser == "" {
		return nil, ErrActingUserUnknown
	}

	var created *Review
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		// 1. 解析提交者
		u, err := s.users.FindByUsername(ctx, actingUser)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return ErrActingUserUnknown
			}
			return err
		}

		// 2. 图书必须存在
		exists, err := s.books.Exists(ctx, bookID)
		if err != nil {
			return err
		}
		if !exists {
			return catalog.ErrBookNotFound
		}

		// 3. 评分校验
		r, err := NewReview(bookID, u.ID, rating, text)
		if err != nil {
			return err
		}

		// 4. 插入
		if err := s.repo.Create(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindNotFound, apperrors.KindValidation, apperrors.KindUnauthorized:
			return nil, err
		}
		slog.ErrorContext(ctx, "review store failure",
			slog.Uint64("book_id", uint64(bookID)),
			slog.String("username", actingUser),
			slog.Any("error", err),
		)
		return nil, ErrStoreFailure.WithCause(err)
	}

	return created, nil
}
