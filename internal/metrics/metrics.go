// Package metrics khai báo các collector Prometheus của ứng dụng.
// Collector được đăng ký vào registry mặc định, /metrics đọc từ đó.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidtube"

var (
	// FeedPipelineDuration đo thời gian chạy một aggregation pipeline của feed
	FeedPipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "pipeline_duration_seconds",
			Help:      "Thời gian chạy aggregation pipeline theo từng feed",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"feed", "status"},
	)

	// ToggleTotal đếm số lần toggle theo loại đối tượng và kết quả
	ToggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggle_total",
			Help:      "Số lần toggle like/subscription theo kết quả",
		},
		[]string{"target", "result"},
	)

	// UploadTotal đếm số lần tải tệp lên kho lưu trữ
	UploadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_total",
			Help:      "Số lần tải tệp lên kho lưu trữ theo loại tệp và kết quả",
		},
		[]string{"kind", "result"},
	)

	// CircuitBreakerState là trạng thái hiện tại của circuit breaker (0 closed, 1 half-open, 2 open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Trạng thái circuit breaker: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)
)

// ObserveFeed ghi nhận thời gian chạy pipeline tính từ start
func ObserveFeed(feed string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	FeedPipelineDuration.WithLabelValues(feed, status).Observe(time.Since(start).Seconds())
}

// RecordToggle ghi nhận kết quả một lần toggle
func RecordToggle(target string, on bool) {
	result := "off"
	if on {
		result = "on"
	}
	ToggleTotal.WithLabelValues(target, result).Inc()
}

// RecordUpload ghi nhận kết quả một lần upload
func RecordUpload(kind string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	UploadTotal.WithLabelValues(kind, result).Inc()
}

// SetBreakerState cập nhật gauge trạng thái circuit breaker
func SetBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
