package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	"github.com/xiebiao/bookreview/pkg/response"
)

// New 创建Gin引擎并注册全部路由
//
//	GET  /ping                            健康检查
//	GET  /metrics                         Prometheus指标
//	GET  /swagger/*any                    API文档（release模式不注册）
//	POST /api/v1/users/register|login|refresh
//	POST /api/v1/users/logout             需要登录
//	GET  /api/v1/books                    需要登录
//	GET  /api/v1/books/:id                可选登录
//	POST /api/v1/books/:id/reviews        可选登录（未登录由领域服务拒绝）
//	GET  /api/v1/books/:id/reviews/mine   需要登录
//	GET  /api/:isbn                       对外ISBN接口
func New(
	cfg *config.Config,
	logger *slog.Logger,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger), middleware.Metrics())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh", userHandler.Refresh)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", authMiddleware.RequireAuth(), bookHandler.Search)
			books.GET("/:id", authMiddleware.OptionalAuth(), bookHandler.Detail)

			// 书评
			books.POST("/:id/reviews", authMiddleware.OptionalAuth(), reviewHandler.AddReview)
			books.GET("/:id/reviews/mine", authMiddleware.RequireAuth(), reviewHandler.MyReviews)
		}
	}

	// 对外ISBN接口（不带版本前缀，保持原有地址）
	// 任何单段的/api/*路径（包括/api/v1本身）都按ISBN查询，查不到时返回ISBN未命中的404
	r.GET("/api/:isbn", bookHandler.LookupISBN)

	return r
}
