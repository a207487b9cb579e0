package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Conversion API metrics
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_operations_total",
		Help: "Total timecode operations served",
	}, []string{"operation"})

	operationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_operation_errors_total",
		Help: "Total failed timecode operations by error type",
	}, []string{"operation", "error_type"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timecode_operation_duration_seconds",
		Help:    "Time spent computing a timecode operation",
		Buckets: prometheus.ExponentialBuckets(0.000001, 10, 7), // 1µs to 1s
	}, []string{"operation"})

	dayOverflowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_day_overflows_total",
		Help: "Results that carried past midnight",
	}, []string{"operation"})

	// Conversion cache metrics
	cacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_cache_requests_total",
		Help: "Conversion cache lookups by result",
	}, []string{"result"})

	// RTP metrics
	rtpPacketsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtp_packets_timed_total",
		Help: "RTP packets converted to timecode",
	})

	rtpWrapsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rtp_timestamp_wraps_total",
		Help: "32-bit RTP timestamp wraparounds observed",
	})

	rtpSenderReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtp_sender_reports_total",
		Help: "RTCP sender reports by outcome",
	}, []string{"result"})
)

// RecordOperation counts a successful operation and its duration.
func RecordOperation(operation string, seconds float64) {
	operationsTotal.WithLabelValues(operation).Inc()
	operationDuration.WithLabelValues(operation).Observe(seconds)
}

// IncrementOperationError counts a failed operation.
func IncrementOperationError(operation, errorType string) {
	operationErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// AddDayOverflows adds the absolute number of days an operation carried.
func AddDayOverflows(operation string, days int32) {
	if days < 0 {
		days = -days
	}
	if days == 0 {
		return
	}
	dayOverflowsTotal.WithLabelValues(operation).Add(float64(days))
}

// RecordCacheHit and RecordCacheMiss count conversion cache lookups.
func RecordCacheHit() {
	cacheRequestsTotal.WithLabelValues("hit").Inc()
}

func RecordCacheMiss() {
	cacheRequestsTotal.WithLabelValues("miss").Inc()
}

// RecordCacheError counts lookups that failed at the backend.
func RecordCacheError() {
	cacheRequestsTotal.WithLabelValues("error").Inc()
}

// AddRTPPackets counts packets timed by an RTP clock.
func AddRTPPackets(n int) {
	rtpPacketsTotal.Add(float64(n))
}

// IncrementRTPWraps is meant to be installed as an RTP clock wrap hook.
func IncrementRTPWraps() {
	rtpWrapsTotal.Inc()
}

// RecordSenderReport counts an RTCP sender report as applied or ignored.
func RecordSenderReport(applied bool) {
	result := "ignored"
	if applied {
		result = "applied"
	}
	rtpSenderReportsTotal.WithLabelValues(result).Inc()
}
