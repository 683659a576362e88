package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/pkg/jwt"
)

// issuer 签发Token并记录会话（注册和登录共用）
type issuer struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// issue 生成Token对并保存会话
// 会话保存失败不影响登录，只记录日志
func (i *issuer) issue(ctx context.Context, u *user.User, clientIP string) (*AuthResponse, error) {
	tokenPair, err := i.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Username,
		"login_at": time.Now().Unix(),
		"ip":       clientIP,

		sessionRefreshID: tokenPair.RefreshTokenID,
	}
	// 会话有效期 = Refresh Token有效期
	if err := i.sessionStore.SaveSession(ctx, u.Username, sessionData, i.jwtManager.RefreshTokenTTL()); err != nil {
		slog.WarnContext(ctx, "save session failed", slog.String("username", u.Username), slog.Any("error", err))
	}

	return &AuthResponse{
		User: UserInfo{
			ID:       u.ID,
			Username: u.Username,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// UserInfo 用户信息
// 说明：不返回凭证字段
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
