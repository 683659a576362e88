//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：
// *gin.Engine → Handler → UseCase → 领域Service → Repository → *gorm.DB → *config.Config
package main

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appcatalog "github.com/xiebiao/bookreview/internal/application/catalog"
	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain"
	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/database"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：数据库连接、Redis连接（可选）、消息发布（可选）
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	provideSessionStore,
	provideCatalogCache,
	provideEventPublisher,
	provideJWTManager,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	database.NewCatalogRepository,
	database.NewUserRepository,
	database.NewReviewRepository,
	database.NewTxManager,
	wire.Bind(new(domain.Transactor), new(*database.TxManager)),
)

// domainSet 领域层依赖
// 书评服务通过窄接口使用用户仓储和目录仓储
var domainSet = wire.NewSet(
	provideCatalogService,
	provideCredentialScheme,
	user.NewService,
	review.NewService,
	wire.Bind(new(review.UserLookup), new(user.Repository)),
	wire.Bind(new(review.BookLookup), new(catalog.Repository)),
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appcatalog.NewSearchBooksUseCase,
	appcatalog.NewGetBookUseCase,
	appcatalog.NewLookupISBNUseCase,
	appreview.NewAddReviewUseCase,
	appreview.NewListMyReviewsUseCase,
)

// interfaceSet 中间件、处理器、路由
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	wire.Bind(new(middleware.TokenBlacklist), new(appuser.SessionStore)),
	wire.Bind(new(middleware.SessionValidator), new(user.Service)),
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewReviewHandler,
	router.New,
)

// InitializeApp 初始化整个应用
// 返回配置好的Gin引擎和cleanup（关闭数据库、Redis、RabbitMQ连接）
func InitializeApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
