package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics are the HTTP collectors recorded by withMetrics
type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inflight        *prometheus.GaugeVec
}

// registerMetrics creates the HTTP collectors plus Go runtime, process and
// database pool collectors on reg, and returns the /metrics handler.
func registerMetrics(reg *prometheus.Registry, db *sql.DB) (*metrics, http.Handler, error) {
	m := &metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokereview",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pokereview",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pokereview",
			Name:      "http_inflight_requests",
			Help:      "Requests currently being served",
		}, []string{"method"}),
	}

	var err error
	if m.requestsTotal, err = registerOrExisting(reg, m.requestsTotal); err != nil {
		return nil, nil, err
	}
	if m.requestDuration, err = registerOrExisting(reg, m.requestDuration); err != nil {
		return nil, nil, err
	}
	if m.inflight, err = registerOrExisting(reg, m.inflight); err != nil {
		return nil, nil, err
	}

	extra := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	if db != nil {
		extra = append(extra, collectors.NewDBStatsCollector(db, "pokereview"))
	}
	for _, c := range extra {
		if _, err := registerOrExisting(reg, c); err != nil {
			return nil, nil, err
		}
	}

	return m, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), nil
}

// registerOrExisting registers c, or returns the collector already
// registered under the same descriptors.
func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// withMetrics counts and times requests, labelled by chi route pattern
func (m *metrics) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := strings.ToUpper(r.Method)
		m.inflight.WithLabelValues(method).Inc()
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func() {
			m.inflight.WithLabelValues(method).Dec()

			path := routePattern(r)
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		}()

		next.ServeHTTP(ww, r)
	})
}

// routePattern keeps label cardinality bounded: ids never reach a label
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
