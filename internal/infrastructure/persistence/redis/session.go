package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// SessionStore 会话存储
// 设计说明：
// 1. 会话身份就是用户名，写书评时用它反查用户ID
// 2. 支持JWT黑名单（登出），按Token的jti记录
// 3. Key设计：session:{username}、blacklist:{jti}
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 保存用户会话（登录时间、客户端IP等）
// 过期时间与Refresh Token一致
func (s *SessionStore) SaveSession(ctx context.Context, username string, sessionData map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(username)

	// 一次往返写入字段和过期时间
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, sessionData)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}

	return nil
}

// GetSession 获取用户会话
// 会话不存在时返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, username string) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(username)).Result()
	if err != nil {
		return nil, apperrors.ErrRedisError.WithCause(err)
	}

	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	return result, nil
}

// DeleteSession 删除用户会话（登出）
func (s *SessionStore) DeleteSession(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, sessionKey(username)).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单
// ttl取Token的剩余有效期，过期后自动删除
func (s *SessionStore) AddToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(tokenID), "revoked", ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, apperrors.ErrRedisError.WithCause(err)
	}
	return exists > 0, nil
}

func sessionKey(username string) string {
	return fmt.Sprintf("session:%s", username)
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("blacklist:%s", tokenID)
}
