package ports

import "time"

// LedgerObserver recibe el resultado de cada operación de ledger (métricas).
// ledger: "allocation" | "zone_stock"; op: "allocate", "deallocate", "add_stock", ...
type LedgerObserver interface {
	Observe(ledger, op string, err error, elapsed time.Duration)
}

// NopObserver descarta las observaciones.
type NopObserver struct{}

func (NopObserver) Observe(string, string, error, time.Duration) {}
