package user

import (
	"context"

	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

const tracerName = "application/user"

// RegisterUseCase 用户注册用例
// 设计说明：
// 1. 调用认证关口完成校验和写入
// 2. 注册成功即登录：直接签发Token对并记录会话
type RegisterUseCase struct {
	userService user.Service
	issuer      issuer
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		issuer:      issuer{jwtManager: jwtManager, sessionStore: sessionStore},
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (resp *AuthResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Register")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.IncCounterVec(metrics.RegistrationsTotal, map[string]string{"result": metrics.ResultOfAppError(err)})
	}()

	// 1. 调用领域服务执行注册
	u, err := uc.userService.Register(ctx, req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		return nil, err
	}

	// 2. 签发Token
	return uc.issuer.issue(ctx, u, req.ClientIP)
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string
	Password        string
	ConfirmPassword string
	ClientIP        string
}
