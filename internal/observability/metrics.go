package observability

import (
	"context"
	"io"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/quantumatlas/atlas-backend/internal/platform/logger"
)

// Metrics holds the process-wide counters exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge

	analyzerCalls   *CounterVec
	analyzerLatency *HistogramVec

	sketchUploads     *Counter
	sketchUploadBytes *Counter
	imageCache        *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	all []collector
}

func NewMetrics() *Metrics {
	m := &Metrics{
		apiRequests: NewCounterVec("atlas_api_requests_total", "API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"atlas_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:     NewGauge("atlas_api_inflight_requests", "In-flight API requests."),
		analyzerCalls:   NewCounterVec("atlas_analyzer_calls_total", "NISQ analyzer executions by status.", []string{"status"}),
		analyzerLatency: NewHistogramVec("atlas_analyzer_call_duration_seconds", "NISQ analyzer execution latency.", []string{"status"}, []float64{0.1, 0.5, 1, 5, 10, 30, 60}),
		sketchUploads:   NewCounter("atlas_sketch_uploads_total", "Accepted sketch uploads."),
		sketchUploadBytes: NewCounter(
			"atlas_sketch_upload_bytes_total",
			"Bytes of accepted sketch uploads.",
		),
		imageCache: NewCounterVec("atlas_image_cache_lookups_total", "Sketch image cache lookups by result.", []string{"result"}),
		dbStats:    NewGaugeVec("atlas_db_pool", "database/sql pool statistics.", []string{"stat"}),
		redisUp:    NewGauge("atlas_redis_up", "1 when the last redis ping succeeded."),
		redisPing:  NewGauge("atlas_redis_ping_seconds", "Latency of the last redis ping."),
	}
	m.all = []collector{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.analyzerCalls, m.analyzerLatency,
		m.sketchUploads, m.sketchUploadBytes, m.imageCache,
		m.dbStats, m.redisUp, m.redisPing,
	}
	return m
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range m.all {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) APIInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) APIInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAnalyzer(err error, dur time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.analyzerCalls.Inc(status)
	m.analyzerLatency.Observe(dur.Seconds(), status)
}

func (m *Metrics) ObserveSketchUpload(size int) {
	if m == nil {
		return
	}
	m.sketchUploads.Inc()
	m.sketchUploadBytes.Add(float64(size))
}

func (m *Metrics) ObserveImageCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.imageCache.Inc("hit")
	} else {
		m.imageCache.Inc("miss")
	}
}

// StartDBCollector samples the connection pool every interval until ctx ends.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	go tick(ctx, interval, func() {
		st := sqlDB.Stats()
		m.dbStats.Set(float64(st.OpenConnections), "open_connections")
		m.dbStats.Set(float64(st.InUse), "in_use")
		m.dbStats.Set(float64(st.Idle), "idle")
		m.dbStats.Set(float64(st.WaitCount), "wait_count")
		m.dbStats.Set(st.WaitDuration.Seconds(), "wait_duration_seconds")
		m.dbStats.Set(float64(st.MaxOpenConnections), "max_open_connections")
	})
}

// StartRedisCollector pings rdb every interval until ctx ends. The client is not closed.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *goredis.Client, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	go tick(ctx, interval, func() {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err != nil {
			m.redisUp.Set(0)
			if log != nil && ctx.Err() == nil {
				log.Warn("metrics: redis ping failed", "error", err)
			}
			return
		}
		m.redisUp.Set(1)
		m.redisPing.Set(time.Since(start).Seconds())
	})
}

func tick(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
