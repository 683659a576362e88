package user

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 校验用户名密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService user.Service
	issuer      issuer
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore) *LoginUseCase {
	return &LoginUseCase{
		userService: userService,
		issuer:      issuer{jwtManager: jwtManager, sessionStore: sessionStore},
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (resp *AuthResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Login")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.IncCounterVec(metrics.LoginsTotal, map[string]string{"result": metrics.ResultOfAppError(err)})
	}()

	u, err := uc.userService.VerifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return uc.issuer.issue(ctx, u, req.ClientIP)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, req.Username); err != nil {
		return err
	}

	// 2. 将Access Token加入黑名单，保留到它原本的过期时间
	return uc.sessionStore.AddToBlacklist(ctx, req.TokenID, time.Until(req.ExpiresAt))
}

// LogoutRequest 登出请求（来自已解析的Access Token）
type LogoutRequest struct {
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

// RefreshTokenUseCase 刷新Access Token
// Refresh Token必须对应当前会话：登出或重新登录后，旧的Refresh Token不能再换新Token
type RefreshTokenUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 用Refresh Token换取新的Access Token
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessionStore.GetSession(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, err
	}
	// nil表示没有会话存储（未启用Redis）
	if session != nil && session[sessionRefreshID] != claims.ID {
		return nil, apperrors.ErrTokenExpired
	}

	accessToken, err := uc.jwtManager.IssueAccessToken(claims)
	if err != nil {
		return nil, err
	}

	return &RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
