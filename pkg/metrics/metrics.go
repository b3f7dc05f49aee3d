package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "superstore"

// Resultado de uma execução do pipeline
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFailed   = "failed"
)

// Collectors agrupa as métricas expostas em /metrics. Um *Collectors nil é válido
// e ignora todas as observações.
type Collectors struct {
	registry         *prometheus.Registry
	pipelineRuns     *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	loadFailures     *prometheus.CounterVec
	activeSessions   prometheus.Gauge
	sweptSessions    prometheus.Counter
}

func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		pipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Execuções do pipeline carga, filtro e agregação",
		}, []string{"mode", "status"}),
		pipelineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duração de uma execução completa do pipeline",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_load_failures_total",
			Help:      "Falhas de carga do dataset por código de erro",
		}, []string{"code"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessões autenticadas no armazenamento",
		}),
		sweptSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swept_sessions_total",
			Help:      "Sessões ociosas removidas pelo job de limpeza",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.pipelineRuns,
		c.pipelineDuration,
		c.loadFailures,
		c.activeSessions,
		c.sweptSessions,
	)
	return c
}

func (c *Collectors) ObservePipeline(mode string, status string, duration time.Duration) {
	if c == nil {
		return
	}
	c.pipelineRuns.WithLabelValues(mode, status).Inc()
	c.pipelineDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func (c *Collectors) LoadFailed(code string) {
	if c == nil {
		return
	}
	c.loadFailures.WithLabelValues(code).Inc()
}

func (c *Collectors) SetActiveSessions(count int) {
	if c == nil {
		return
	}
	c.activeSessions.Set(float64(count))
}

func (c *Collectors) SessionsSwept(count int) {
	if c == nil {
		return
	}
	c.sweptSessions.Add(float64(count))
}

// Handler expõe as métricas no formato de exposição do Prometheus
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
