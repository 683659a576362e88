package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/xiebiao/bookreview/internal/application/catalog"
	appreview "github.com/xiebiao/bookreview/internal/application/review"
	appuser "github.com/xiebiao/bookreview/internal/application/user"
	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/review"
	"github.com/xiebiao/bookreview/internal/domain/user"
	"github.com/xiebiao/bookreview/internal/infrastructure/config"
	"github.com/xiebiao/bookreview/internal/infrastructure/persistence/database"
	redisinfra "github.com/xiebiao/bookreview/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookreview/internal/interface/http/dto"
	"github.com/xiebiao/bookreview/internal/interface/http/handler"
	"github.com/xiebiao/bookreview/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/jwt"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// apiResponse 统一响应结构（Data延迟解析）
type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newTestServer 完整装配：内存sqlite + miniredis
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	metrics.InitMetrics()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Catalog: config.CatalogConfig{SearchLimit: catalog.SearchLimit, CacheTTL: time.Minute},
	}

	// 1. 数据库与目录
	db, err := database.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	_, err = database.NewCatalogLoader(db).Load(ctx, []catalog.Entry{
		{ISBN: "0380795272", Title: "Krondor: The Betrayal", Author: "Raymond E. Feist", Published: 1998},
		{ISBN: "0441172717", Title: "Dune", Author: "Frank Herbert", Published: 1965},
		{ISBN: "0553293354", Title: "Foundation", Author: "Isaac Asimov", Published: 1951},
		{ISBN: "0553803700", Title: "I, Robot", Author: "Isaac Asimov", Published: 1950},
	})
	require.NoError(t, err)

	// 2. Redis
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	client, err := redisinfra.NewClient(ctx, config.RedisConfig{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	sessions := redisinfra.NewSessionStore(client)
	cache := redisinfra.NewCacheStore(client, cfg.Catalog.CacheTTL)

	// 3. 仓储与领域服务
	catalogRepo := database.NewCatalogRepository(db)
	userRepo := database.NewUserRepository(db)
	txManager := database.NewTxManager(db)
	catalogService := catalog.NewService(catalogRepo, cfg.Catalog.SearchLimit)
	userService := user.NewService(userRepo, txManager, user.NewPlainScheme())
	reviewService := review.NewService(database.NewReviewRepository(db), userRepo, catalogRepo, txManager)

	// 4. 用例与处理器
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	userHandler := handler.NewUserHandler(
		appuser.NewRegisterUseCase(userService, jwtManager, sessions),
		appuser.NewLoginUseCase(userService, jwtManager, sessions),
		appuser.NewLogoutUseCase(sessions),
		appuser.NewRefreshTokenUseCase(jwtManager, sessions),
	)
	bookHandler := handler.NewBookHandler(
		appcatalog.NewSearchBooksUseCase(catalogService, cache),
		appcatalog.NewGetBookUseCase(catalogService, reviewService, cache),
		appcatalog.NewLookupISBNUseCase(catalogService),
	)
	reviewHandler := handler.NewReviewHandler(
		appreview.NewAddReviewUseCase(reviewService, appreview.NoopPublisher{}),
		appreview.NewListMyReviewsUseCase(reviewService),
	)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessions, userService)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger, userHandler, bookHandler, reviewHandler, authMiddleware)
}

// do 发送请求并返回HTTP状态码和原始响应体
func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code, w.Body.Bytes()
}

// call 发送请求并解析统一响应，data非nil时解析Data
func call(t *testing.T, r http.Handler, method, path, token string, body, data interface{}) apiResponse {
	t.Helper()

	status, raw := do(t, r, method, path, token, body)
	require.Equal(t, http.StatusOK, status, string(raw))

	var resp apiResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	if data != nil && resp.Code == 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func register(t *testing.T, r http.Handler, username, password string) dto.LoginResponse {
	t.Helper()

	var login dto.LoginResponse
	resp := call(t, r, http.MethodPost, "/api/v1/users/register", "", dto.RegisterRequest{
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
	}, &login)
	require.Equal(t, 0, resp.Code, resp.Message)
	return login
}

func findBook(t *testing.T, r http.Handler, token, title string) dto.BookItem {
	t.Helper()

	var result dto.SearchBooksResponse
	resp := call(t, r, http.MethodGet, "/api/v1/books?criteria=title&query="+title, token, nil, &result)
	require.Equal(t, 0, resp.Code, resp.Message)
	require.NotEmpty(t, result.List)
	return result.List[0]
}

func TestPing(t *testing.T) {
	r := newTestServer(t)

	resp := call(t, r, http.MethodGet, "/ping", "", nil, nil)
	assert.Equal(t, 0, resp.Code)

	status, _ := do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestUserFlow(t *testing.T) {
	r := newTestServer(t)

	t.Run("注册成功即登录", func(t *testing.T) {
		login := register(t, r, "alice", "wonderland")
		assert.Equal(t, "alice", login.User.Username)
		assert.NotEmpty(t, login.AccessToken)
		assert.NotEmpty(t, login.RefreshToken)
	})

	t.Run("注册失败返回原有提示", func(t *testing.T) {
		tests := []struct {
			name string
			req  dto.RegisterRequest
			want *apperrors.AppError
		}{
			{"用户名重复", dto.RegisterRequest{Username: "alice", Password: "wonderland", ConfirmPassword: "wonderland"}, user.ErrUsernameTaken},
			{"用户名过短", dto.RegisterRequest{Username: "bob", Password: "wonderland", ConfirmPassword: "wonderland"}, user.ErrUsernameTooShort},
			{"密码过短", dto.RegisterRequest{Username: "carol", Password: "short", ConfirmPassword: "short"}, user.ErrPasswordTooShort},
			{"两次密码不一致", dto.RegisterRequest{Username: "carol", Password: "password1", ConfirmPassword: "password2"}, user.ErrPasswordMismatch},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp := call(t, r, http.MethodPost, "/api/v1/users/register", "", tt.req, nil)
				assert.Equal(t, tt.want.Code, resp.Code)
				assert.Equal(t, tt.want.Message, resp.Message)
			})
		}
	})

	t.Run("缺少字段", func(t *testing.T) {
		resp := call(t, r, http.MethodPost, "/api/v1/users/login", "", map[string]string{"username": "alice"}, nil)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
	})

	t.Run("登录", func(t *testing.T) {
		var login dto.LoginResponse
		resp := call(t, r, http.MethodPost, "/api/v1/users/login", "", dto.LoginRequest{Username: "alice", Password: "wonderland"}, &login)
		require.Equal(t, 0, resp.Code)
		assert.Equal(t, int64(3600), login.ExpiresIn)

		resp = call(t, r, http.MethodPost, "/api/v1/users/login", "", dto.LoginRequest{Username: "alice", Password: "Wonderland"}, nil)
		assert.Equal(t, user.ErrInvalidCredentials.Code, resp.Code)
		assert.Equal(t, user.ErrInvalidCredentials.Message, resp.Message)
	})

	t.Run("刷新Token", func(t *testing.T) {
		login := register(t, r, "dave1", "password1")

		var refreshed dto.RefreshResponse
		resp := call(t, r, http.MethodPost, "/api/v1/users/refresh", "", dto.RefreshRequest{RefreshToken: login.RefreshToken}, &refreshed)
		require.Equal(t, 0, resp.Code)
		findBook(t, r, refreshed.AccessToken, "Dune")

		// Access Token不能用来刷新
		resp = call(t, r, http.MethodPost, "/api/v1/users/refresh", "", dto.RefreshRequest{RefreshToken: login.AccessToken}, nil)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, resp.Code)

		// Refresh Token不能直接访问接口
		resp = call(t, r, http.MethodGet, "/api/v1/books?criteria=title&query=Dune", login.RefreshToken, nil, nil)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, resp.Code)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		login := register(t, r, "erin1", "password1")
		findBook(t, r, login.AccessToken, "Dune")

		resp := call(t, r, http.MethodPost, "/api/v1/users/logout", login.AccessToken, nil, nil)
		require.Equal(t, 0, resp.Code)

		resp = call(t, r, http.MethodGet, "/api/v1/books?criteria=title&query=Dune", login.AccessToken, nil, nil)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, resp.Code)

		// 会话已删除，Refresh Token也不能再换新Token
		resp = call(t, r, http.MethodPost, "/api/v1/users/refresh", "", dto.RefreshRequest{RefreshToken: login.RefreshToken}, nil)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, resp.Code)
	})
}

func TestSearch(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "alice", "wonderland").AccessToken

	t.Run("未登录不能搜索", func(t *testing.T) {
		resp := call(t, r, http.MethodGet, "/api/v1/books?criteria=title&query=Dune", "", nil, nil)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, resp.Code)
	})

	tests := []struct {
		name     string
		criteria string
		query    string
		want     []string
	}{
		{"书名子串", "title", "Robot", []string{"I, Robot"}},
		{"条件大小写不敏感", "TITLE", "Dune", []string{"Dune"}},
		{"ISBN子串", "isbn", "0553", []string{"Foundation", "I, Robot"}},
		{"作者子串", "author", "Asimov", []string{"Foundation", "I, Robot"}},
		{"空查询匹配全部", "title", "", []string{"Krondor: The Betrayal", "Dune", "Foundation", "I, Robot"}},
		{"没有匹配", "title", "Harry", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result dto.SearchBooksResponse
			resp := call(t, r, http.MethodGet, fmt.Sprintf("/api/v1/books?criteria=%s&query=%s", tt.criteria, tt.query), token, nil, &result)
			require.Equal(t, 0, resp.Code, resp.Message)

			titles := make([]string, 0, len(result.List))
			for _, b := range result.List {
				titles = append(titles, b.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
			assert.Equal(t, len(tt.want), result.Count)
		})
	}

	t.Run("不支持的条件", func(t *testing.T) {
		resp := call(t, r, http.MethodGet, "/api/v1/books?criteria=publisher&query=x", token, nil, nil)
		assert.Equal(t, catalog.ErrInvalidCriteria.Code, resp.Code)
	})

	t.Run("作者字段来自关联", func(t *testing.T) {
		book := findBook(t, r, token, "Krondor")
		assert.Equal(t, "Raymond E. Feist", book.Author)
		assert.Equal(t, 1998, book.Published)
		assert.Equal(t, "0380795272", book.ISBN)
	})
}

func TestReviewFlow(t *testing.T) {
	r := newTestServer(t)
	alice := register(t, r, "alice", "wonderland").AccessToken
	bob := register(t, r, "bobby", "password1").AccessToken
	dune := findBook(t, r, alice, "Dune")
	detailPath := fmt.Sprintf("/api/v1/books/%d", dune.ID)
	reviewsPath := detailPath + "/reviews"

	t.Run("匿名查看详情没有书评", func(t *testing.T) {
		var detail dto.BookDetailResponse
		resp := call(t, r, http.MethodGet, detailPath, "", nil, &detail)
		require.Equal(t, 0, resp.Code)
		assert.Equal(t, "Dune", detail.Book.Title)
		assert.Nil(t, detail.Review)
	})

	t.Run("匿名不能提交书评", func(t *testing.T) {
		resp := call(t, r, http.MethodPost, reviewsPath, "", dto.AddReviewRequest{Rating: 4, Review: "x"}, nil)
		assert.Equal(t, review.ErrActingUserUnknown.Code, resp.Code)
		assert.Equal(t, review.ErrActingUserUnknown.Message, resp.Message)
	})

	t.Run("提交书评，评分换算为百分比", func(t *testing.T) {
		var added dto.AddReviewResponse
		resp := call(t, r, http.MethodPost, reviewsPath, alice, dto.AddReviewRequest{Rating: 4, Review: "Spice must flow"}, &added)
		require.Equal(t, 0, resp.Code, resp.Message)
		assert.Equal(t, 80, added.Rating)
		assert.Equal(t, dune.ID, added.BookID)
		assert.WithinDuration(t, time.Now(), added.CreatedOn, time.Minute)

		var detail dto.BookDetailResponse
		call(t, r, http.MethodGet, detailPath, alice, nil, &detail)
		require.NotNil(t, detail.Review)
		assert.Equal(t, "Spice must flow", detail.Review.Text)
		assert.Equal(t, 80, detail.Review.Rating)
	})

	t.Run("书评只追加，详情展示第一条", func(t *testing.T) {
		resp := call(t, r, http.MethodPost, reviewsPath, alice, dto.AddReviewRequest{Rating: 2, Review: "Second thoughts"}, nil)
		require.Equal(t, 0, resp.Code)

		var detail dto.BookDetailResponse
		call(t, r, http.MethodGet, detailPath, alice, nil, &detail)
		require.NotNil(t, detail.Review)
		assert.Equal(t, "Spice must flow", detail.Review.Text)

		var mine dto.MyReviewsResponse
		call(t, r, http.MethodGet, reviewsPath+"/mine", alice, nil, &mine)
		require.Equal(t, 2, mine.Count)
		assert.Equal(t, "Spice must flow", mine.List[0].Text)
		assert.Equal(t, 40, mine.List[1].Rating)
	})

	t.Run("书评按用户隔离", func(t *testing.T) {
		var detail dto.BookDetailResponse
		call(t, r, http.MethodGet, detailPath, bob, nil, &detail)
		assert.Nil(t, detail.Review)

		var mine dto.MyReviewsResponse
		call(t, r, http.MethodGet, reviewsPath+"/mine", bob, nil, &mine)
		assert.Equal(t, 0, mine.Count)
		assert.NotNil(t, mine.List)
	})

	t.Run("评分超出范围", func(t *testing.T) {
		for _, rating := range []int{0, 6} {
			resp := call(t, r, http.MethodPost, reviewsPath, alice, dto.AddReviewRequest{Rating: rating, Review: "x"}, nil)
			assert.Equal(t, review.ErrInvalidRating.Code, resp.Code, "rating=%d", rating)
			assert.Equal(t, review.ErrInvalidRating.Message, resp.Message)
		}
	})

	t.Run("图书不存在", func(t *testing.T) {
		resp := call(t, r, http.MethodPost, "/api/v1/books/9999/reviews", alice, dto.AddReviewRequest{Rating: 3}, nil)
		assert.Equal(t, catalog.ErrBookNotFound.Code, resp.Code)

		resp = call(t, r, http.MethodGet, "/api/v1/books/9999", alice, nil, nil)
		assert.Equal(t, catalog.ErrBookNotFound.Code, resp.Code)

		resp = call(t, r, http.MethodGet, "/api/v1/books/abc", alice, nil, nil)
		assert.Equal(t, catalog.ErrBookNotFound.Code, resp.Code)
	})
}

func TestLookupISBN(t *testing.T) {
	r := newTestServer(t)

	t.Run("命中返回原始结构", func(t *testing.T) {
		status, raw := do(t, r, http.MethodGet, "/api/0441172717", "", nil)
		require.Equal(t, http.StatusOK, status)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, map[string]interface{}{
			"title":  "Dune",
			"author": "Frank Herbert",
			"year":   float64(1965),
			"isbn":   "0441172717",
		}, got)
	})

	t.Run("只做精确匹配", func(t *testing.T) {
		status, raw := do(t, r, http.MethodGet, "/api/04411727", "", nil)
		require.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"error": "Book with given isbn not found in the database."}`, string(raw))
	})

	t.Run("版本前缀本身按ISBN未命中处理", func(t *testing.T) {
		status, raw := do(t, r, http.MethodGet, "/api/v1", "", nil)
		require.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"error": "Book with given isbn not found in the database."}`, string(raw))
	})
}
