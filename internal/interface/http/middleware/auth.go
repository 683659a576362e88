package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/response"
)

// Context键
const (
	ctxKeyUsername = "username"
	ctxKeyClaims   = "claims"
)

// TokenBlacklist 已登出Token的黑名单（按jti）
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, tokenID string) (bool, error)
}

// SessionValidator 判断会话身份是否可用（认证关口的isSessionValid）
type SessionValidator interface {
	IsSessionValid(sessionUsername string) bool
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Bearer Token并验证签名、过期时间
// 2. 只接受Access Token，Refresh Token不能直接访问接口
// 3. 按jti检查黑名单（登出后的Token立即失效）
// 4. 把用户名注入Context，它就是会话身份
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
	sessions   SessionValidator
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist, sessions SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
		sessions:   sessions,
	}
}

// RequireAuth 要求登录
// 使用方式：
//
//	books := v1.Group("/books")
//	books.GET("", authMiddleware.RequireAuth(), bookHandler.Search)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		// 2. 验证Token
		claims, err := m.authenticate(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		// 3. 注入会话身份
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth 可选登录
// 说明：Token缺失或无效时作为匿名用户继续处理（图书详情、提交书评）
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := m.authenticate(c.Request.Context(), tokenString); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// authenticate 解析Token并检查类型、会话身份和黑名单
func (m *AuthMiddleware) authenticate(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	claims, err := m.jwtManager.ParseToken(tokenString)
	if err != nil {
		return nil, err // ErrTokenExpired、ErrInvalidToken
	}

	if claims.TokenType != jwt.TokenTypeAccess || !m.sessions.IsSessionValid(claims.Username) {
		return nil, apperrors.ErrInvalidToken
	}

	revoked, err := m.blacklist.IsInBlacklist(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenExpired
	}

	return claims, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxKeyUsername, claims.Username)
	c.Set(ctxKeyClaims, claims)
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUsername 从Context获取会话用户名，未登录返回空字符串
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxKeyUsername)
}

// GetClaims 从Context获取已验证的Claims
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ctxKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
