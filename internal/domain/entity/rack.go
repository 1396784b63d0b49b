package entity

import (
	"fmt"
	"strings"
	"time"
)

// Rack es una ubicación física dentro de una zona. Code se genera a partir de la posición.
type Rack struct {
	ID        string
	ZoneID    string
	Code      string
	Aisle     int
	Rack      int
	Level     int
	Column    int
	CreatedAt time.Time
}

// RackCode genera el código de rack: <ZONA>-<corredor>-<rack>-<nivel>-<columna>, con dos dígitos.
// Ej: RackCode("a", 1, 2, 3, 4) = "A-01-02-03-04".
func RackCode(zoneName string, aisle, rack, level, column int) string {
	return fmt.Sprintf("%s-%02d-%02d-%02d-%02d",
		strings.ToUpper(strings.TrimSpace(zoneName)), aisle, rack, level, column)
}
