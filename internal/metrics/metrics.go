package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barber_timeline"

// Metrics agrupa os coletores da aplicação. Um *Metrics nil é válido e não
// registra nada, o que simplifica testes e a opção METRICS_ENABLED=false.
type Metrics struct {
	guardRejections *prometheus.CounterVec
	guardApprovals  prometheus.Counter
	composeSeconds  *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		guardRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_rejections_total",
			Help:      "Reservas recusadas pelo guard, por motivo.",
		}, []string{"reason"}),

		guardApprovals: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_approvals_total",
			Help:      "Reservas aprovadas pelo guard.",
		}),

		composeSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "timeline_compose_seconds",
			Help:      "Tempo para montar a linha do tempo.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"view"}),

		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota e status.",
		}, []string{"method", "route", "status"}),

		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) GuardRejected(reason string) {
	if m == nil {
		return
	}
	m.guardRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) GuardApproved() {
	if m == nil {
		return
	}
	m.guardApprovals.Inc()
}

func (m *Metrics) ObserveCompose(view string, started time.Time) {
	if m == nil {
		return
	}
	m.composeSeconds.WithLabelValues(view).Observe(time.Since(started).Seconds())
}

// Middleware mede todas as rotas registradas pelo template do gin,
// nunca pelo path cru, para não explodir a cardinalidade.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.httpRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
		m.httpDuration.
			WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}
