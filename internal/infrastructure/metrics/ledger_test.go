package metrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armazem-api/internal/domain"
	"github.com/jhoicas/armazem-api/internal/infrastructure/metrics"
)

func TestLedgerMetrics_CuentaPorResultado(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewLedgerMetrics(reg)

	m.Observe("allocation", "allocate", nil, 10*time.Millisecond)
	m.Observe("allocation", "allocate", &domain.CapacityExceededError{Remaining: decimal.NewFromInt(6)}, time.Millisecond)
	m.Observe("zone_stock", "remove_stock", domain.NotFoundf("x"), time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "ledger_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = testutil.GatherAndCount(reg, "ledger_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLedgerMetrics_NilSeguro(t *testing.T) {
	var m *metrics.LedgerMetrics
	assert.NotPanics(t, func() { m.Observe("allocation", "allocate", nil, time.Millisecond) })
	assert.NotPanics(t, func() { metrics.NewLedgerMetrics(nil).Observe("", "", nil, 0) })
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", metrics.Outcome(nil))
	assert.Equal(t, "exceeds_available", metrics.Outcome(&domain.ExceedsAvailableError{}))
	assert.Equal(t, "invalid", metrics.Outcome(domain.ErrInvalidAmount))
	assert.Equal(t, "storage", metrics.Outcome(&domain.StorageError{Op: "commit", Err: context.Canceled}))
	assert.Equal(t, "error", metrics.Outcome(errors.New("x")))
}
