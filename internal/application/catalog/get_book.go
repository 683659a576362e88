package catalog

import (
	"context"
	"log/slog"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/internal/domain/review"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

// GetBookUseCase 图书详情用例
// 详情页同时展示当前用户对这本书的书评（没有时为null）
type GetBookUseCase struct {
	catalogService catalog.Service
	reviewService  review.Service
	cache          catalog.Cache
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(catalogService catalog.Service, reviewService review.Service, cache catalog.Cache) *GetBookUseCase {
	return &GetBookUseCase{
		catalogService: catalogService,
		reviewService:  reviewService,
		cache:          cache,
	}
}

// GetBookRequest 详情请求DTO
type GetBookRequest struct {
	BookID   uint
	Username string // 会话中的用户名，未登录为空
}

// GetBookResponse 详情响应DTO
type GetBookResponse struct {
	Book   *catalog.BookView  `json:"book"`
	Review *review.ReviewView `json:"review"`
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, req GetBookRequest) (resp *GetBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 图书（Cache-Aside）
	book, err := uc.loadBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	// 2. 当前用户的书评，未找到不是错误
	view, err := uc.reviewService.GetReviewForUser(ctx, req.BookID, req.Username)
	if err != nil && apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	return &GetBookResponse{Book: book, Review: view}, nil
}

func (uc *GetBookUseCase) loadBook(ctx context.Context, id uint) (*catalog.BookView, error) {
	book, err := uc.cache.GetBook(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "book cache unavailable", slog.Uint64("book_id", uint64(id)), slog.Any("error", err))
	}
	if book != nil {
		return book, nil
	}

	book, err = uc.catalogService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetBook(ctx, book); err != nil {
		slog.WarnContext(ctx, "book cache write failed", slog.Uint64("book_id", uint64(id)), slog.Any("error", err))
	}
	return book, nil
}

// LookupISBNUseCase 对外ISBN查询接口
type LookupISBNUseCase struct {
	catalogService catalog.Service
}

// NewLookupISBNUseCase 创建ISBN查询用例
func NewLookupISBNUseCase(catalogService catalog.Service) *LookupISBNUseCase {
	return &LookupISBNUseCase{catalogService: catalogService}
}

// Execute 按ISBN精确查询，返回{title, author, year, isbn}
func (uc *LookupISBNUseCase) Execute(ctx context.Context, isbn string) (*catalog.ISBNLookup, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "LookupISBN")
	defer span.End()

	book, err := uc.catalogService.GetByISBN(ctx, isbn)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	return book.ToISBNLookup(), nil
}
