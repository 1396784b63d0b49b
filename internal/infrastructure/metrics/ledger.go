// Package metrics exporta métricas Prometheus de las operaciones de ledger.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/armazem-api/internal/application/ports"
	"github.com/jhoicas/armazem-api/internal/domain"
)

var _ ports.LedgerObserver = (*LedgerMetrics)(nil)

// LedgerMetrics cuenta operaciones por ledger, operación y resultado, y mide su latencia.
type LedgerMetrics struct {
	duration   *prometheus.HistogramVec
	operations *prometheus.CounterVec
}

// NewLedgerMetrics registra las métricas en reg. Con reg nil devuelve un observer inerte.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_operation_duration_seconds",
		Help:    "Duration of ledger operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"ledger", "op"})
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_operations_total",
		Help: "Ledger operations by outcome.",
	}, []string{"ledger", "op", "outcome"})
	reg.MustRegister(duration, operations)
	return &LedgerMetrics{duration: duration, operations: operations}
}

// Observe implementa ports.LedgerObserver.
func (m *LedgerMetrics) Observe(ledger, op string, err error, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	ledger, op = normalizeLabel(ledger), normalizeLabel(op)
	m.duration.WithLabelValues(ledger, op).Observe(elapsed.Seconds())
	m.operations.WithLabelValues(ledger, op, Outcome(err)).Inc()
}

// Outcome etiqueta acotada para el error de una operación.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrExceedsAvailable):
		return "exceeds_available"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrStorage):
		return "storage"
	default:
		return "error"
	}
}

func normalizeLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
