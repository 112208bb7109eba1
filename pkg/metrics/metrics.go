package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MQ 消费延迟（毫秒）
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// 单封邮件分析耗时（毫秒）
	AnalysisLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_analysis_latency_ms",
			Help:    "Per-email analysis latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1ms to ~4s
		},
		[]string{"path"}, // path: assisted, rule
	)

	// Assist 调用延迟（毫秒）
	AssistCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assist_call_latency_ms",
			Help:    "Assist service call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"endpoint", "status"},
	)

	// Assist 失败后回退到规则路径的次数
	AssistFallbackCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assist_fallback_count",
			Help: "Total number of times analysis fell back to the rule-based path",
		},
	)

	// 邮件分析计数
	EmailAnalyzedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_analyzed_count",
			Help: "Total number of emails analyzed",
		},
		[]string{"priority", "category"},
	)

	// 摘要生成计数
	DigestGeneratedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "digest_generated_count",
			Help: "Total number of morning digests generated",
		},
	)

	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordMQConsumeLatency 记录 MQ 消费延迟
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// RecordAnalysisLatency 记录分析耗时
func RecordAnalysisLatency(path string, duration time.Duration) {
	AnalysisLatency.WithLabelValues(path).Observe(float64(duration.Milliseconds()))
}

// RecordAssistCallLatency 记录 Assist 调用延迟
func RecordAssistCallLatency(endpoint, status string, duration time.Duration) {
	AssistCallLatency.WithLabelValues(endpoint, status).Observe(float64(duration.Milliseconds()))
}

// RecordAssistFallback 记录一次回退
func RecordAssistFallback() {
	AssistFallbackCount.Inc()
}

// RecordEmailAnalyzed 记录一次邮件分析结果
func RecordEmailAnalyzed(priority, category string) {
	EmailAnalyzedCount.WithLabelValues(priority, category).Inc()
}

// RecordDigestGenerated 记录一次摘要生成
func RecordDigestGenerated() {
	DigestGeneratedCount.Inc()
}
