package user

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookreview/internal/domain"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// Service 用户领域服务（认证关口）
// 设计说明：
// 1. 校验顺序固定，调用方可以根据错误码渲染不同提示
// 2. 存储层故障统一转换为ErrStoreFailure，原始错误只进日志
type Service interface {
	// VerifyCredentials 校验用户名和密码
	// 长度规则先于数据库查询；用户名匹配的行中恰好一行凭证匹配才算通过
	VerifyCredentials(ctx context.Context, username, password string) (*User, error)

	// Register 注册
	// 校验顺序：两次密码一致 → 密码长度 → 用户名长度 → 用户名唯一 → 写入
	Register(ctx context.Context, username, password, confirmPassword string) (*User, error)

	// IsSessionValid 会话中的用户名是否结构上有效
	IsSessionValid(sessionUsername string) bool
}

type service struct {
	repo   Repository
	tx     domain.Transactor
	scheme CredentialScheme
}

// NewService 创建用户服务
func NewService(repo Repository, tx domain.Transactor, scheme CredentialScheme) Service {
	if scheme == nil {
		scheme = NewPlainScheme()
	}
	return &service{repo: repo, tx: tx, scheme: scheme}
}

func (s *service) VerifyCredentials(ctx context.Context, username, password string) (*User, error) {
	// 1. 长度规则（用户名优先）
	if err := validateLoginLengths(username, password); err != nil {
		return nil, err
	}

	// 2. 查找同名用户
	users, err := s.repo.ListByUsername(ctx, username)
	if err != nil {
		return nil, s.storeFailure(ctx, "verify credentials", err)
	}

	// 3. 恰好一行匹配（没有用户、密码错误、意外的重复行都拒绝）
	var matched *User
	count := 0
	for _, u := range users {
		if s.scheme.Matches(u.Hash, password) {
			matched = u
			count++
		}
	}
	if count != 1 {
		return nil, ErrInvalidCredentials
	}

	return matched, nil
}

func (s *service) Register(ctx context.Context, username, password, confirmPassword string) (*User, error) {
	// 1. 两次密码一致
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	// 2. 长度规则（密码优先）
	if err := validateSignupLengths(username, password); err != nil {
		return nil, err
	}

	// 3. 凭证转换为存储形式
	hash, err := s.scheme.Hash(password)
	if err != nil {
		return nil, s.storeFailure(ctx, "hash credential", err)
	}

	// 4. 唯一性检查 + 写入在同一事务内
	// 并发注册同名用户时由唯一索引兜底，仓储把冲突转换为ErrUsernameTaken
	u := NewUser(username, hash)
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		existing, err := s.repo.ListByUsername(ctx, username)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrUsernameTaken
		}
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation {
			return nil, err
		}
		return nil, s.storeFailure(ctx, "register user", err)
	}

	return u, nil
}

func (s *service) IsSessionValid(sessionUsername string) bool {
	return IsSessionValid(sessionUsername)
}

// storeFailure 记录原始错误并转换为ErrStoreFailure
func (s *service) storeFailure(ctx context.Context, op string, err error) error {
	slog.ErrorContext(ctx, "user store failure", slog.String("op", op), slog.Any("error", err))
	return ErrStoreFailure.WithCause(err)
}
