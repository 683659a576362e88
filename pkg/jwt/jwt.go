package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

const issuer = "bookreview"

// Token类型
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Manager JWT管理器
// 设计说明：
// 1. 使用双Token机制：Access Token（短期）+ Refresh Token（长期）
// 2. Token里携带用户名，它就是会话身份（写书评时用它反查用户ID）
// 3. 每个Token带唯一jti，登出时按Token加入黑名单
type Manager struct {
	secret             string        // JWT签名密钥
	accessTokenExpire  time.Duration // Access Token有效期
	refreshTokenExpire time.Duration // Refresh Token有效期
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             secret,
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair Token对（Access + Refresh）
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间（秒）

	// RefreshTokenID Refresh Token的jti，记录在会话里，登出后旧的Refresh Token随会话失效
	RefreshTokenID string `json:"-"`
}

// AccessTokenTTL Access Token有效期（登出时黑名单的保留时长）
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenExpire
}

// RefreshTokenTTL Refresh Token有效期（会话记录的保留时长）
func (m *Manager) RefreshTokenTTL() time.Duration {
	return m.refreshTokenExpire
}

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(userID uint, username string) (*TokenPair, error) {
	now := time.Now()

	accessTokenString, err := m.sign(userID, username, TokenTypeAccess, uuid.NewString(), now, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue access token")
	}

	refreshID := uuid.NewString()
	refreshTokenString, err := m.sign(userID, username, TokenTypeRefresh, refreshID, now, m.refreshTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue refresh token")
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),

		RefreshTokenID: refreshID,
	}, nil
}

// ParseToken 解析并验证Token
// 1. 验证签名（防止伪造）
// 2. 验证过期时间（exp）
// 3. 验证生效时间（nbf）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}

// ParseRefreshToken 解析Refresh Token，Access Token不能拿来刷新
func (m *Manager) ParseRefreshToken(refreshToken string) (*Claims, error) {
	claims, err := m.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// IssueAccessToken 按已验证的Refresh Token签发新的Access Token
func (m *Manager) IssueAccessToken(refresh *Claims) (string, error) {
	tokenString, err := m.sign(refresh.UserID, refresh.Username, TokenTypeAccess, uuid.NewString(), time.Now(), m.accessTokenExpire)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to refresh token")
	}

	return tokenString, nil
}

// sign 签发单个Token
func (m *Manager) sign(userID uint, username, tokenType, tokenID string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}
