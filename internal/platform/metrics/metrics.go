// Copyright (c) 2026 Todoro. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics provides Prometheus collection and exposition for the HTTP layer.
//
// Each service owns a private registry so the two deployments never mix
// series; the service name is baked in as a constant label.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records per-request HTTP metrics.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector with its own registry, pre-registered
// with the standard Go and process collectors.
func NewCollector(service string) *Collector {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "todoro_http_requests_total",
			Help:        "Total HTTP requests by method, route pattern and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "todoro_http_request_duration_seconds",
			Help:        "HTTP request latency by method and route pattern.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.requestsTotal,
		c.requestDuration,
	)

	return c
}

// Handler returns the /metrics exposition handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency for every request.
//
// The route label uses chi's route pattern (e.g. /api/todos/{id}) rather
// than the raw path to keep label cardinality bounded.
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startTime := time.Now()
			recorder := &metricsRecorder{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(recorder, request)

			route := request.URL.Path
			if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			c.requestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).Inc()
			c.requestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
		})
	}
}

type metricsRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *metricsRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}
