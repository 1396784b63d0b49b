package entity

import "time"

// Zone representa una zona del almacén (agrupa racks y stock de producto terminado).
type Zone struct {
	ID          string
	Name        string // siempre en mayúsculas
	Description string
	CreatedAt   time.Time
}
