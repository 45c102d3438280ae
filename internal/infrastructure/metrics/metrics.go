// Package metrics expone las señales operativas de la API en formato Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/facturapp-api/internal/application/billing"
	"github.com/jhoicas/facturapp-api/internal/application/inventory"
)

const namespace = "facturapp"

var _ billing.Metrics = (*Registry)(nil)
var _ inventory.Metrics = (*Registry)(nil)

// Registry agrupa los colectores de la aplicación. Los métodos sobre un *Registry nil no hacen nada.
type Registry struct {
	reg *prometheus.Registry

	payments       *prometheus.CounterVec
	overdueMarked  prometheus.Counter
	idCollisions   prometheus.Counter
	stockMovements *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New crea un registro propio (no el global) con los colectores de proceso y runtime de Go.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Pagos registrados por método.",
		}, []string{"method"}),
		overdueMarked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_marked_unpaid_total",
			Help:      "Facturas pasadas de Pending a Unpaid por vencimiento.",
		}),
		idCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_id_collisions_total",
			Help:      "IDs de factura generados que ya existían.",
		}),
		stockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Movimientos de stock aplicados por tipo.",
		}, []string{"type"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.payments, r.overdueMarked, r.idCollisions, r.stockMovements, r.httpRequests, r.httpDuration,
	)
	return r
}

// Gatherer registro a exponer en /metrics.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func (r *Registry) PaymentRecorded(method string) {
	if r == nil {
		return
	}
	r.payments.WithLabelValues(method).Inc()
}

func (r *Registry) OverdueMarked(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.overdueMarked.Add(float64(n))
}

func (r *Registry) InvoiceIDCollision() {
	if r == nil {
		return
	}
	r.idCollisions.Inc()
}

func (r *Registry) MovementApplied(movementType string) {
	if r == nil {
		return
	}
	r.stockMovements.WithLabelValues(movementType).Inc()
}

// ObserveRequest registra una petición HTTP terminada. route es la plantilla (/invoices/:id), no la URL.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
