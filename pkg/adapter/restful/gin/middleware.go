// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/mysite/pkg/core/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request identifier. A valid incoming
// value is kept, otherwise a fresh UUID is generated.
const RequestIDHeader = "X-Request-ID"

// RequestLogger attaches a logger to the request context which tags
// all records with the request identifier. The same identifier is
// echoed in the response headers.
func RequestLogger(base *slog.Logger) HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}
		c.Header(RequestIDHeader, rid)
		l := base.With(slog.String("request-id", rid))
		ctx := log.WithLogger(c.Request.Context(), l)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Metrics keeps the HTTP requests counters and latency histograms.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers the HTTP metrics with a fresh
// registry, so tests and multiple engines do not collide.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mysite",
				Name:      "http_requests_total",
				Help:      "The number of handled HTTP requests.",
			}, []string{"route", "method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mysite",
				Name:      "http_request_duration_seconds",
				Help:      "The time taken to handle an HTTP request.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"route", "method"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

// Middleware records one observation per request. Requests which
// match no route are counted under the "unmatched" route, so random
// paths may not explode the labels cardinality.
func (m *Metrics) Middleware() HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requests.WithLabelValues(route, c.Request.Method, status).Inc()
		m.latency.WithLabelValues(route, c.Request.Method).Observe(
			time.Since(start).Seconds(),
		)
	}
}

// Handler serves the gathered metrics in the Prometheus text format.
func (m *Metrics) Handler() HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}

// maxLimitedClients bounds the number of tracked client addresses.
const maxLimitedClients = 10000

// RateLimiter throttles requests with one token bucket per client IP
// address. Each bucket is refilled with perMinute tokens per minute
// and holds at most perMinute tokens.
type RateLimiter struct {
	mu         sync.Mutex
	limit      rate.Limit
	burst      int
	maxClients int
	clients    map[string]*clientBucket
}

type clientBucket struct {
	*rate.Limiter
	seen time.Time
}

// NewRateLimiter creates a limiter which accepts perMinute requests
// per minute from each client. The perMinute must be positive.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		limit:      rate.Limit(float64(perMinute) / 60.0),
		burst:      perMinute,
		maxClients: maxLimitedClients,
		clients:    make(map[string]*clientBucket),
	}
}

func (rl *RateLimiter) allow(client string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	b, ok := rl.clients[client]
	if !ok {
		if len(rl.clients) >= rl.maxClients {
			rl.evict(now)
		}
		b = &clientBucket{Limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[client] = b
	}
	b.seen = now
	return b.AllowN(now, 1)
}

// evict drops the refilled buckets, which are equivalent to new ones.
// If none is refilled, the bucket with the most tokens left is dropped
// (the least recently seen one among equals), so heavily throttled
// clients keep their state.
func (rl *RateLimiter) evict(now time.Time) {
	var victim string
	var victimB *clientBucket
	var victimTokens float64
	for client, b := range rl.clients {
		tokens := b.TokensAt(now)
		if tokens >= float64(rl.burst) {
			delete(rl.clients, client)
			continue
		}
		if victimB == nil || tokens > victimTokens ||
			(tokens == victimTokens && b.seen.Before(victimB.seen)) {
			victim, victimB, victimTokens = client, b, tokens
		}
	}
	if len(rl.clients) >= rl.maxClients {
		delete(rl.clients, victim)
	}
}

// Middleware aborts the throttled requests with a 429 status code.
func (rl *RateLimiter) Middleware() HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			log.Warn(
				c, "request is throttled",
				slog.String("client", c.ClientIP()),
				slog.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "too many requests",
			})
			return
		}
		c.Next()
	}
}
