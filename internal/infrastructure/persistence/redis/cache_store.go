package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
	"github.com/xiebiao/bookreview/pkg/circuitbreaker"
	"github.com/xiebiao/bookreview/pkg/metrics"
)

// 缓存名称（指标标签）
const (
	cacheBook   = "book"
	cacheSearch = "search"
)

// CacheStore 图书目录缓存（Cache-Aside）
//
// 1. 先查缓存，未命中再查数据库，查到后回填
// 2. 目录导入后不再变化，不需要主动失效，只依赖TTL
// 3. 所有Redis调用都经过熔断器：Redis故障时快速失败，调用方直接回源数据库
type CacheStore struct {
	client  *redis.Client
	breaker *circuitbreaker.CircuitBreaker
	ttl     time.Duration
}

var _ catalog.Cache = (*CacheStore)(nil)

// NewCacheStore 创建缓存存储实例
func NewCacheStore(client *redis.Client, ttl time.Duration) *CacheStore {
	breaker := circuitbreaker.NewCircuitBreaker("redis-cache", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 未命中是正常结果，不计为失败
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
	})

	return &CacheStore{client: client, breaker: breaker, ttl: ttl}
}

// GetBook 获取图书详情缓存
func (c *CacheStore) GetBook(ctx context.Context, id uint) (*catalog.BookView, error) {
	var b catalog.BookView
	hit, err := c.get(ctx, cacheBook, bookKey(id), &b)
	if err != nil || !hit {
		return nil, err
	}
	return &b, nil
}

// SetBook 设置图书详情缓存
func (c *CacheStore) SetBook(ctx context.Context, b *catalog.BookView) error {
	return c.set(ctx, bookKey(b.ID), b)
}

// GetSearch 获取搜索结果缓存
// 空结果也会被缓存，命中时返回空切片而不是nil
func (c *CacheStore) GetSearch(ctx context.Context, criteria catalog.Criteria, query string) ([]*catalog.BookView, error) {
	books := []*catalog.BookView{}
	hit, err := c.get(ctx, cacheSearch, searchKey(criteria, query), &books)
	if err != nil || !hit {
		return nil, err
	}
	return books, nil
}

// SetSearch 设置搜索结果缓存
func (c *CacheStore) SetSearch(ctx context.Context, criteria catalog.Criteria, query string, books []*catalog.BookView) error {
	if books == nil {
		books = []*catalog.BookView{}
	}
	return c.set(ctx, searchKey(criteria, query), books)
}

// get 读取并反序列化，未命中时返回(false, nil)
func (c *CacheStore) get(ctx context.Context, cache, key string, dest interface{}) (bool, error) {
	var val []byte
	err := c.breaker.Execute(func() error {
		var err error
		val, err = c.client.Get(ctx, key).Bytes()
		return err
	})

	switch {
	case errors.Is(err, redis.Nil):
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": cache, "result": metrics.ResultMiss})
		return false, nil
	case err != nil:
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": cache, "result": metrics.ResultFailure})
		return false, fmt.Errorf("获取缓存失败: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": cache, "result": metrics.ResultFailure})
		return false, fmt.Errorf("反序列化失败: %w", err)
	}

	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": cache, "result": metrics.ResultHit})
	return true, nil
}

// set 序列化为JSON并写入，设置过期时间
func (c *CacheStore) set(ctx context.Context, key string, value interface{}) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, key, val, c.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// =========================================
// 缓存Key设计
// =========================================

// bookKey book:detail:{id}
func bookKey(id uint) string {
	return fmt.Sprintf("book:detail:%d", id)
}

// searchKey book:search:{criteria}:{sha1(query)}
// 查询是用户输入，哈希后作为key避免过长或包含特殊字符
func searchKey(criteria catalog.Criteria, query string) string {
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("book:search:%s:%s", criteria, hex.EncodeToString(sum[:]))
}
