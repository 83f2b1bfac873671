// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ログイン結果ラベル
const (
	LoginResultSuccess         = "success"
	LoginResultUserNotFound    = "user_not_found"
	LoginResultInvalidPassword = "invalid_password"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェア、ハンドラー、ワーカーから利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(method string, duration time.Duration)
	RecordLogin(result string)
	RecordRegistration()
	RecordMealCreated()
	RecordMealDeleted()
	RecordHistoryCreated()
	RecordHistoryDeleted()
	RecordHistoryPruned(count int64)
	RecordRateLimited(limitType string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus     *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	logins         *prometheus.CounterVec
	registrations  prometheus.Counter
	mealsCreated   prometheus.Counter
	mealsDeleted   prometheus.Counter
	historyCreated prometheus.Counter
	historyDeleted prometheus.Counter
	historyPruned  prometheus.Counter
	rateLimited    *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealtrack_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mealtrack_request_latency_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealtrack_login_total",
			Help: "結果別のログイン試行数",
		}, []string{"result"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_registrations_total",
			Help: "ユーザー登録の合計数",
		}),
		mealsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_meals_created_total",
			Help: "作成された食事の合計数",
		}),
		mealsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_meals_deleted_total",
			Help: "削除された食事の合計数",
		}),
		historyCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_history_created_total",
			Help: "作成された履歴の合計数",
		}),
		historyDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_history_deleted_total",
			Help: "ユーザー操作で削除された履歴の合計数",
		}),
		historyPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mealtrack_history_pruned_total",
			Help: "保持期間切れで削除された履歴の合計数",
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mealtrack_rate_limited_total",
			Help: "レート制限で拒否されたリクエスト数",
		}, []string{"limit_type"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.logins,
		c.registrations,
		c.mealsCreated,
		c.mealsDeleted,
		c.historyCreated,
		c.historyDeleted,
		c.historyPruned,
		c.rateLimited,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestLatency(method string, duration time.Duration) {
	c.requestLatency.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordLogin はログイン試行の結果を記録する。
func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

// RecordRegistration はユーザー登録を記録する。
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordMealCreated() {
	c.mealsCreated.Inc()
}

func (c *Collector) RecordMealDeleted() {
	c.mealsDeleted.Inc()
}

func (c *Collector) RecordHistoryCreated() {
	c.historyCreated.Inc()
}

func (c *Collector) RecordHistoryDeleted() {
	c.historyDeleted.Inc()
}

// RecordHistoryPruned は保持期間切れで削除された履歴数を記録する。
func (c *Collector) RecordHistoryPruned(count int64) {
	c.historyPruned.Add(float64(count))
}

// RecordRateLimited はレート制限による拒否を記録する。
func (c *Collector) RecordRateLimited(limitType string) {
	c.rateLimited.WithLabelValues(limitType).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントのみを提供するHTTPハンドラーを返す。
// APIサーバーを持たないワーカープロセスのスクレイプ用。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
