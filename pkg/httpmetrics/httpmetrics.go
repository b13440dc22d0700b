// Package httpmetrics собирает Prometheus-метрики исходящих HTTP запросов
// через обёртку http.RoundTripper
package httpmetrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ctxKey struct{}

// WithOperation помечает запрос именем операции клиента (например, "check_availability")
// Метка используется вместо сырого URL, чтобы не раздувать кардинальность метрик
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, ctxKey{}, op)
}

func operationFromContext(ctx context.Context) string {
	if op, ok := ctx.Value(ctxKey{}).(string); ok {
		return op
	}
	return "unknown"
}

// Metrics набор метрик исходящих HTTP запросов
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "client_http_requests_total",
				Help:        "Total number of outgoing HTTP requests",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"operation", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "client_http_request_duration_seconds",
				Help:        "Duration of outgoing HTTP requests",
				ConstLabels: prometheus.Labels{"service": serviceName},
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"operation", "method"},
		),
	}
	prometheus.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

type roundTripper struct {
	next    http.RoundTripper
	metrics *Metrics
}

// RoundTripper оборачивает транспорт сбором метрик
// nil next означает http.DefaultTransport
func (m *Metrics) RoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &roundTripper{next: next, metrics: m}
}

func (rt *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	op := operationFromContext(req.Context())
	start := time.Now()

	resp, err := rt.next.RoundTrip(req)

	rt.metrics.requestDuration.WithLabelValues(op, req.Method).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	rt.metrics.requestsTotal.WithLabelValues(op, req.Method, status).Inc()

	return resp, err
}
