package user

import (
	"context"
	"time"
)

// SessionStore 会话存储
// 启用Redis时由redis.SessionStore实现，否则使用NoopSessionStore
type SessionStore interface {
	SaveSession(ctx context.Context, username string, sessionData map[string]interface{}, ttl time.Duration) error
	GetSession(ctx context.Context, username string) (map[string]string, error)
	DeleteSession(ctx context.Context, username string) error
	AddToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, tokenID string) (bool, error)
}

// NoopSessionStore 未启用Redis时使用
// 不记录会话，登出只能依赖Token自然过期
type NoopSessionStore struct{}

// sessionRefreshID 会话中记录的Refresh Token jti
const sessionRefreshID = "refresh_id"


func (NoopSessionStore) SaveSession(context.Context, string, map[string]interface{}, time.Duration) error {
	return nil
}

// GetSession 没有会话记录，返回nil表示不做会话校验
func (NoopSessionStore) GetSession(context.Context, string) (map[string]string, error) {
	return nil, nil
}

func (NoopSessionStore) DeleteSession(context.Context, string) error { return nil }

func (NoopSessionStore) AddToBlacklist(context.Context, string, time.Duration) error { return nil }

func (NoopSessionStore) IsInBlacklist(context.Context, string) (bool, error) { return false, nil }
