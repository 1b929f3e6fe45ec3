package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	arxiv "github.com/tmc/arxivid"
)

// metrics holds the Prometheus collectors for the serve command. Collectors
// are registered on a private registry so several servers can coexist in tests.
type metrics struct {
	registry *prometheus.Registry

	// Parses counts parse attempts by kind (id, category, stamp) and result.
	Parses *prometheus.CounterVec

	// ParseErrors counts failed parses by error kind.
	ParseErrors *prometheus.CounterVec

	// LedgerOps counts ledger operations by op and result.
	LedgerOps *prometheus.CounterVec

	// Requests counts HTTP requests by route and status code.
	Requests *prometheus.CounterVec

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		Parses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arxiv",
			Name:      "parses_total",
			Help:      "Parse attempts by kind and result.",
		}, []string{"kind", "result"}),
		ParseErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arxiv",
			Name:      "parse_errors_total",
			Help:      "Failed parses by error kind.",
		}, []string{"kind", "error"}),
		LedgerOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arxiv",
			Name:      "ledger_operations_total",
			Help:      "Ledger operations by op and result.",
		}, []string{"op", "result"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arxiv",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "arxiv",
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
}

// handler serves the registry in the Prometheus exposition format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// observeParse records the outcome of a parse of the given kind.
func (m *metrics) observeParse(kind string, err error) {
	if err == nil {
		m.Parses.WithLabelValues(kind, "ok").Inc()
		return
	}
	m.Parses.WithLabelValues(kind, "error").Inc()
	m.ParseErrors.WithLabelValues(kind, errorKind(err)).Inc()
}

func (m *metrics) observeLedger(op string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, arxiv.ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.LedgerOps.WithLabelValues(op, result).Inc()
}

func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
	})
}

// errorKind maps a parse error onto a short label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, arxiv.ErrNotEnoughComponents):
		return "not_enough_components"
	case errors.Is(err, arxiv.ErrInvalidArxivID):
		return "invalid_arxiv_id"
	case errors.Is(err, arxiv.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, arxiv.ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, arxiv.ErrInvalidYear):
		return "invalid_year"
	case errors.Is(err, arxiv.ErrInvalidMonth):
		return "invalid_month"
	case errors.Is(err, arxiv.ErrInvalidID):
		return "invalid_id"
	case errors.Is(err, arxiv.ErrSyntax):
		return "syntax"
	}
	return "other"
}
