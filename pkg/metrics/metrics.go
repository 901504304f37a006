// Package metrics 提供基于Prometheus的指标收集框架
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、借出总数、罚款开单总数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数、熔断器状态
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、定时扫描耗时
//
// # 使用示例
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 在HTTP服务中暴露/metrics端点
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
//	// 3. 在业务代码中记录指标
//	metrics.IncCounter(metrics.LoansIssuedTotal)
//
// # 命名规范
//
// 1. **Counter**: 以`_total`结尾（loans_issued_total）
// 2. **Histogram**: 以单位结尾（sweep_duration_seconds）
// 3. **Gauge**: 使用现在时态（http_requests_in_progress）
//
// 避免高基数标签：不要用member_id、barcode作为标签
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/loans）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 流通业务指标

	// LoansIssuedTotal 借出总数（Counter）
	LoansIssuedTotal prometheus.Counter

	// LoansReturnedTotal 归还总数（Counter）
	LoansReturnedTotal prometheus.Counter

	// LoansRenewedTotal 续借总数（Counter）
	LoansRenewedTotal prometheus.Counter

	// LoansMarkedLostTotal 挂失总数（Counter）
	LoansMarkedLostTotal prometheus.Counter

	// CirculationRejectedTotal 流通操作被拒绝总数（Counter）
	// 标签：operation（issue/renew/reserve）、reason（业务错误码）
	CirculationRejectedTotal *prometheus.CounterVec

	// 预约队列指标

	// ReservationsCreatedTotal 预约创建总数（Counter）
	ReservationsCreatedTotal prometheus.Counter

	// ReservationsFulfilledTotal 留书到位总数（Counter）
	ReservationsFulfilledTotal prometheus.Counter

	// HoldsExpiredTotal 留书保留过期释放总数（Counter）
	HoldsExpiredTotal prometheus.Counter

	// 罚款指标

	// FinesAssessedTotal 罚款开单总数（Counter）
	// 标签：reason（overdue/damaged/lost）
	FinesAssessedTotal *prometheus.CounterVec

	// FinePaymentsTotal 罚款缴纳笔数（Counter）
	FinePaymentsTotal prometheus.Counter

	// 定时扫描指标

	// SweepRunsTotal 定时扫描执行总数（Counter）
	// 标签：job（fine_accrual/hold_expiry）、result（success/failure）
	SweepRunsTotal *prometheus.CounterVec

	// SweepDuration 定时扫描耗时（Histogram）
	// 标签：job（fine_accrual/hold_expiry）
	SweepDuration *prometheus.HistogramVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

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

	// 流通业务指标
	LoansIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_issued_total",
			Help: "借出总数",
		},
	)

	LoansReturnedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "归还总数",
		},
	)

	LoansRenewedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_renewed_total",
			Help: "续借总数",
		},
	)

	LoansMarkedLostTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_marked_lost_total",
			Help: "挂失总数",
		},
	)

	CirculationRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circulation_rejected_total",
			Help: "流通操作被拒绝总数",
		},
		[]string{"operation", "reason"},
	)

	// 预约队列指标
	ReservationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "预约创建总数",
		},
	)

	ReservationsFulfilledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_fulfilled_total",
			Help: "留书到位总数",
		},
	)

	HoldsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "holds_expired_total",
			Help: "留书保留过期释放总数",
		},
	)

	// 罚款指标
	FinesAssessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fines_assessed_total",
			Help: "罚款开单总数",
		},
		[]string{"reason"},
	)

	FinePaymentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fine_payments_total",
			Help: "罚款缴纳笔数",
		},
	)

	// 定时扫描指标
	SweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sweep_runs_total",
			Help: "定时扫描执行总数",
		},
		[]string{"job", "result"},
	)

	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "sweep_duration_seconds",
			Help: "定时扫描耗时（秒）",
			// 全量扫描耗时随在借数量增长,桶上限放宽到30s
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"job"},
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
		[]string{"exchange", "routing_key"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
