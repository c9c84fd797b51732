package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/report"
	"github.com/xiebiao/bookshop/pkg/breaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

const ratingSummaryKey = "report:rating_summary"

// ReportCache 报表缓存(评分汇总)
// 设计说明:
// 1. 评分汇总是全表聚合查询,读多写少,适合短TTL缓存
// 2. Redis访问经过熔断器:Redis故障时快速失败,直接回源数据库
// 3. 缓存读写失败只降级,不向调用方传播错误
type ReportCache struct {
	client  *redis.Client
	breaker *breaker.Breaker
	ttl     time.Duration
}

// NewReportCache 创建报表缓存
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{
		client:  client,
		breaker: breaker.New(5, 30*time.Second),
		ttl:     ttl,
	}
}

// GetRatingSummaries 读取评分汇总缓存
// 未命中、反序列化失败、Redis故障、熔断打开都返回(nil, false)
func (c *ReportCache) GetRatingSummaries(ctx context.Context) ([]*report.BookRatingSummary, bool) {
	var payload string
	err := c.breaker.Do(func() error {
		var err error
		payload, err = c.client.Get(ctx, ratingSummaryKey).Result()
		if errors.Is(err, redis.Nil) {
			// 未命中不算Redis故障,不计入熔断失败
			payload = ""
			return nil
		}
		return err
	})
	if err != nil || payload == "" {
		metrics.ReportCacheHitsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var rows []*report.BookRatingSummary
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		metrics.ReportCacheHitsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.ReportCacheHitsTotal.WithLabelValues("hit").Inc()
	return rows, true
}

// SetRatingSummaries 写入评分汇总缓存(尽力而为)
func (c *ReportCache) SetRatingSummaries(ctx context.Context, rows []*report.BookRatingSummary) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return
	}

	_ = c.breaker.Do(func() error {
		return c.client.Set(ctx, ratingSummaryKey, payload, c.ttl).Err()
	})
}

// Invalidate 失效评分汇总缓存(新增评价后调用)
func (c *ReportCache) Invalidate(ctx context.Context) {
	_ = c.breaker.Do(func() error {
		return c.client.Del(ctx, ratingSummaryKey).Err()
	})
}
