package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/internal/logger"
)

// Recorder receives usage signals from the recipe services. Implementations must never
// fail the caller.
type Recorder interface {
	RecipeCreated()
	RecipeUpdated()
	RecipeDeleted()
	RecipeQuery(kind string)
	FilterUsed(dimension string)
	FilterDuration(d time.Duration)
	RecipeCount(n int64)
}

// Noop discards every signal.
type Noop struct{}

func (Noop) RecipeCreated()               {}
func (Noop) RecipeUpdated()               {}
func (Noop) RecipeDeleted()               {}
func (Noop) RecipeQuery(string)           {}
func (Noop) FilterUsed(string)            {}
func (Noop) FilterDuration(time.Duration) {}
func (Noop) RecipeCount(int64)            {}

// Prometheus records signals as prometheus collectors.
type Prometheus struct {
	created        prometheus.Counter
	updated        prometheus.Counter
	deleted        prometheus.Counter
	queries        *prometheus.CounterVec
	filterUsage    *prometheus.CounterVec
	filterDuration prometheus.Histogram
	recipeCount    prometheus.Gauge

	logger logger.Logger
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus registers the recipe collectors on reg.
func NewPrometheus(reg prometheus.Registerer, log logger.Logger) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		created: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipe_created_total",
			Help: "Number of recipes created",
		}),
		updated: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipe_updated_total",
			Help: "Number of recipes updated",
		}),
		deleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "recipe_deleted_total",
			Help: "Number of recipes deleted",
		}),
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_queries_total",
			Help: "Number of recipe read queries by type",
		}, []string{"type"}),
		filterUsage: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_filter_total",
			Help: "Number of filter requests using each criterion",
		}, []string{"type"}),
		filterDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "recipe_filter_duration_seconds",
			Help:    "Time taken to filter recipes",
			Buckets: prometheus.DefBuckets,
		}),
		recipeCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "recipe_count",
			Help: "Number of stored recipes after the last create or delete",
		}),
		logger: log,
	}
}

func (p *Prometheus) RecipeCreated() {
	p.safely("recipe_created_total", p.created.Inc)
}

func (p *Prometheus) RecipeUpdated() {
	p.safely("recipe_updated_total", p.updated.Inc)
}

func (p *Prometheus) RecipeDeleted() {
	p.safely("recipe_deleted_total", p.deleted.Inc)
}

func (p *Prometheus) RecipeQuery(kind string) {
	p.safely("recipe_queries_total", func() { p.queries.WithLabelValues(kind).Inc() })
}

func (p *Prometheus) FilterUsed(dimension string) {
	p.safely("recipe_filter_total", func() { p.filterUsage.WithLabelValues(dimension).Inc() })
}

func (p *Prometheus) FilterDuration(d time.Duration) {
	p.safely("recipe_filter_duration_seconds", func() { p.filterDuration.Observe(d.Seconds()) })
}

func (p *Prometheus) RecipeCount(n int64) {
	p.safely("recipe_count", func() { p.recipeCount.Set(float64(n)) })
}

func (p *Prometheus) safely(metric string, record func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("failed to record metric", zap.String("metric", metric), zap.Any("panic", r))
		}
	}()
	record()
}
