package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/pkg/metrics"
	"github.com/xiebiao/bookreview/pkg/tracing"
)

const tracerName = "application/catalog"

// SearchBooksUseCase 图书搜索用例
// 设计说明:
// 1. Cache-Aside：先查缓存，未命中再查数据库并回填
// 2. 缓存故障只记录日志，不影响搜索
// 3. 结果最多20条，不分页
type SearchBooksUseCase struct {
	catalogService catalog.Service
	cache          catalog.Cache
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(catalogService catalog.Service, cache catalog.Cache) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		catalogService: catalogService,
		cache:          cache,
	}
}

// SearchBooksRequest 搜索请求DTO
type SearchBooksRequest struct {
	Query    string // 用户输入的原始查询（子串匹配）
	Criteria string // title | isbn | author
}

// SearchBooksResponse 搜索响应DTO
type SearchBooksResponse struct {
	Query    string              `json:"query"`
	Criteria string              `json:"criteria"`
	Books    []*catalog.BookView `json:"books"`
	Count    int                 `json:"count"`
}

// Execute 执行搜索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (resp *SearchBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchBooks")
	start := time.Now()
	result := metrics.ResultFailure
	defer func() {
		tracing.RecordError(span, err)
		span.End()
		metrics.ObserveHistogram(metrics.SearchDuration, time.Since(start).Seconds())
		metrics.IncCounterVec(metrics.SearchesTotal, map[string]string{"criteria": req.Criteria, "result": result})
	}()

	// 1. 解析搜索条件
	criteria, err := catalog.ParseCriteria(req.Criteria)
	if err != nil {
		req.Criteria = "invalid"
		result = metrics.ResultRejected
		return nil, err
	}
	req.Criteria = string(criteria)

	// 2. 先查缓存
	books, err := uc.cache.GetSearch(ctx, criteria, req.Query)
	if err != nil {
		slog.WarnContext(ctx, "search cache unavailable", slog.Any("error", err))
	}

	// 3. 未命中查数据库并回填
	if books == nil {
		books, err = uc.catalogService.Search(ctx, criteria, req.Query)
		if err != nil {
			return nil, err
		}
		if err := uc.cache.SetSearch(ctx, criteria, req.Query, books); err != nil {
			slog.WarnContext(ctx, "search cache write failed", slog.Any("error", err))
		}
	}

	result = metrics.ResultHit
	if len(books) == 0 {
		result = metrics.ResultEmpty
	}

	return &SearchBooksResponse{
		Query:    req.Query,
		Criteria: req.Criteria,
		Books:    books,
		Count:    len(books),
	}, nil
}
