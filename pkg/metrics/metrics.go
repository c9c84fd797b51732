// Package metrics 提供基于Prometheus的业务指标收集
//
// 指标命名规范：
// - Counter以_total结尾（orders_placed_total）
// - Histogram以单位结尾（_seconds、_cents）
// - Gauge使用现在时态（http_requests_in_progress）
//
// 指标通过Gin的/metrics端点暴露，由Prometheus周期性抓取。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时分布
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 订单业务指标

	// OrdersPlacedTotal 成功创建的订单总数
	OrdersPlacedTotal prometheus.Counter

	// OrderItemsAddedTotal 成功追加的订单明细总数
	OrderItemsAddedTotal prometheus.Counter

	// InsufficientStockTotal 因库存不足被拒绝的明细追加次数
	InsufficientStockTotal prometheus.Counter

	// OrderItemAmountCents 订单明细金额分布（分）
	OrderItemAmountCents prometheus.Histogram

	// 缓存指标

	// ReportCacheHitsTotal 报表缓存命中次数
	// 标签：result（hit/miss/error）
	ReportCacheHitsTotal *prometheus.CounterVec
)

// initialized 防止重复注册（Prometheus重复注册会panic）
var initialized bool

// Init 初始化并注册所有指标
func Init() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshop_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookshop_http_request_duration_seconds",
		Help:    "HTTP request latency distribution",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
	}, []string{"method", "path"})

	HTTPRequestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookshop_http_requests_in_progress",
		Help: "Number of HTTP requests currently being served",
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrderItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_order_items_added_total",
		Help: "Total number of order items added",
	})

	InsufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_insufficient_stock_total",
		Help: "Total number of order item additions rejected for insufficient stock",
	})

	OrderItemAmountCents = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookshop_order_item_amount_cents",
		Help:    "Order item line amount distribution in cents",
		Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
	})

	ReportCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshop_report_cache_requests_total",
		Help: "Report cache lookups by result",
	}, []string{"result"})
}
