package entity

import "time"

// Product producto terminado que puede almacenarse en zonas. El catálogo es externo al ledger.
type Product struct {
	ID          string
	Description string
	Drawing     string
	CreatedAt   time.Time
}
