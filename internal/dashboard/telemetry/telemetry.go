package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "marketdash"

// Stages label fetch failures.
const (
	StageHistory  = "history"
	StageSnapshot = "snapshot"
	StageMacro    = "macro"
)

// Recorder owns the dashboard metrics on its own registry so tests and multiple
// instances do not collide on the global one.
type Recorder struct {
	registry *prometheus.Registry

	refreshDuration prometheus.Histogram
	refreshTotal    *prometheus.CounterVec
	lastRefresh     prometheus.Gauge
	fetchFailures   *prometheus.CounterVec
	rows            *prometheus.GaugeVec
	historyPoints   prometheus.Gauge
	alerts          prometheus.Gauge
	streamClients   prometheus.Gauge
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		refreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "duration_seconds",
			Help:      "Wall time of one refresh cycle",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		refreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "cycles_total",
			Help:      "Refresh cycles by trigger",
		}, []string{"reason"}),
		lastRefresh: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "refresh",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last completed refresh",
		}),
		fetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "failures_total",
			Help:      "Instruments that could not be loaded, by family and stage",
		}, []string{"family", "stage"}),
		rows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "rows",
			Help:      "Rows in the current snapshot table",
		}, []string{"family"}),
		historyPoints: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "points",
			Help:      "Points held in the historical table",
		}),
		alerts: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "alerts",
			Help:      "Rows above the alert threshold after the last refresh",
		}),
		streamClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "clients",
			Help:      "Connected websocket clients",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RefreshCompleted records one finished cycle.
func (r *Recorder) RefreshCompleted(reason string, elapsed time.Duration, at time.Time) {
	r.refreshDuration.Observe(elapsed.Seconds())
	r.refreshTotal.WithLabelValues(reason).Inc()
	r.lastRefresh.Set(float64(at.Unix()))
}

func (r *Recorder) FetchFailures(family, stage string, n int) {
	if n <= 0 {
		return
	}
	r.fetchFailures.WithLabelValues(family, stage).Add(float64(n))
}

func (r *Recorder) SetRows(family string, n int) {
	r.rows.WithLabelValues(family).Set(float64(n))
}

func (r *Recorder) SetHistoryPoints(n int) { r.historyPoints.Set(float64(n)) }

func (r *Recorder) SetAlerts(n int) { r.alerts.Set(float64(n)) }

func (r *Recorder) StreamClientConnected()    { r.streamClients.Inc() }
func (r *Recorder) StreamClientDisconnected() { r.streamClients.Dec() }
