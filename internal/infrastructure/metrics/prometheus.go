// Package metrics expone contadores Prometheus del motor de inventario y de la API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

const namespace = "stock_ledger"

var _ inventory.Metrics = (*Prometheus)(nil)

// Prometheus agrupa los collectors en un registry propio.
type Prometheus struct {
	registry *prometheus.Registry

	movementsRecorded *prometheus.CounterVec
	movementsRejected *prometheus.CounterVec
	balanceDuration   prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New registra los collectors. Incluye métricas de proceso y del runtime de Go.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		movementsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_recorded_total",
			Help:      "Movimientos aceptados por tipo (RECEIPT, ISSUE, TRANSFER).",
		}, []string{"kind"}),
		movementsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_rejected_total",
			Help:      "Movimientos rechazados por motivo.",
		}, []string{"reason"}),
		balanceDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_compute_seconds",
			Help:      "Duración del cálculo de saldos.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.movementsRecorded,
		p.movementsRejected,
		p.balanceDuration,
		p.httpRequests,
		p.httpDuration,
	)
	return p
}

func (p *Prometheus) MovementRecorded(kind string)     { p.movementsRecorded.WithLabelValues(kind).Inc() }
func (p *Prometheus) MovementRejected(reason string)   { p.movementsRejected.WithLabelValues(reason).Inc() }
func (p *Prometheus) BalanceComputed(d time.Duration) { p.balanceDuration.Observe(d.Seconds()) }

// ObserveHTTP registra una petición terminada.
func (p *Prometheus) ObserveHTTP(method, route string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler sirve el registry en formato de exposición Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry expone el registry (tests y collectors adicionales).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }
