// Package metrics 提供基于Prometheus的指标收集
//
// # 指标分类
//
// 1. HTTP指标：请求总数、耗时分布、处理中的请求数（由middleware.Metrics记录）
// 2. 业务指标：图书搜索、书评写入、登录、注册（由application层UseCase记录）
// 3. 缓存与熔断：图书详情缓存命中率、Redis熔断器状态
// 4. 消息发布：review.created事件发布数
//
// # 使用示例
//
//	// 1. 程序启动时初始化
//	metrics.InitMetrics()
//
//	// 2. 在gin路由中暴露/metrics端点
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 3. 在业务代码中记录指标
//	metrics.IncCounterVec(metrics.SearchesTotal, map[string]string{"criteria": "title", "result": "hit"})
//
// # 标签约束
//
// 标签值必须是有限集合（criteria、result、method），不要用username、isbn作为标签
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// 结果标签取值
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultEmpty    = "empty"
)

var (
	// initOnce 防止重复注册（promauto重复注册会panic）
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v1/books/:id）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// SearchesTotal 图书搜索总数
	// 标签：criteria（all/title/isbn/author）、result（hit/empty/failure）
	SearchesTotal *prometheus.CounterVec

	// SearchDuration 图书搜索耗时
	SearchDuration prometheus.Histogram

	// ReviewsTotal 书评写入总数
	// 标签：result（success/rejected/failure）
	ReviewsTotal *prometheus.CounterVec

	// LoginsTotal 登录总数
	// 标签：result（success/rejected/failure）
	LoginsTotal *prometheus.CounterVec

	// RegistrationsTotal 注册总数
	// 标签：result（success/rejected/failure）
	RegistrationsTotal *prometheus.CounterVec

	// 缓存指标

	// CacheRequestsTotal 缓存访问总数
	// 标签：cache（缓存名称）、result（hit/miss/failure）
	CacheRequestsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次；测试中重复调用是安全的
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 图书搜索
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_searches_total",
			Help: "图书搜索总数",
		},
		[]string{"criteria", "result"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "catalog_search_duration_seconds",
			Help: "图书搜索耗时（秒）",
			// LIKE查询走全表扫描，桶比HTTP更细
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// 书评
	ReviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviews_submitted_total",
			Help: "书评写入总数",
		},
		[]string{"result"},
	)

	// 认证
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "登录总数",
		},
		[]string{"result"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "注册总数",
		},
		[]string{"result"},
	)

	// 缓存
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "缓存访问总数",
		},
		[]string{"cache", "result"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
}

// IncCounterVec 递增CounterVec（带标签）
// 指标未初始化时（例如单元测试没有调用InitMetrics）直接忽略
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}

// ResultOf 按错误是否为空给出success/failure标签
func ResultOf(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ResultOfAppError 区分业务拒绝和故障
// 校验失败、未登录、未找到记为rejected，存储故障和未知错误记为failure
func ResultOfAppError(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindNone:
		return ResultSuccess
	case apperrors.KindStoreFailure, apperrors.KindInternal:
		return ResultFailure
	default:
		return ResultRejected
	}
}
