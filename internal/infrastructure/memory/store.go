// Package memory implementa los puertos de persistencia en memoria. Sirve para desarrollo
// local (STORE_DRIVER=memory) y para las pruebas de los casos de uso.
//
// Cada Run* abre una transacción que toma locks por clave (pkg/keylock), acumula las
// escrituras y solo las aplica al hacer commit. Si el callback falla o el contexto se
// cancela, no se aplica nada.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/pkg/keylock"
)

// Store estado en memoria. mu solo protege el acceso a los mapas; la serialización
// de operaciones de ledger la dan los locks por clave.
type Store struct {
	mu          sync.RWMutex
	users       map[string]*entity.User
	zones       map[string]*entity.Zone
	racks       map[string]*entity.Rack
	products    map[string]*entity.Product
	orderLines  map[string]*entity.OrderLine
	allocations map[entity.AllocationKey]*entity.Allocation
	zoneStock   map[entity.ZoneStockKey]*entity.ZoneStock

	locks *keylock.Locker
	now   func() time.Time
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]*entity.User),
		zones:       make(map[string]*entity.Zone),
		racks:       make(map[string]*entity.Rack),
		products:    make(map[string]*entity.Product),
		orderLines:  make(map[string]*entity.OrderLine),
		allocations: make(map[entity.AllocationKey]*entity.Allocation),
		zoneStock:   make(map[entity.ZoneStockKey]*entity.ZoneStock),
		locks:       keylock.New(),
		now:         time.Now,
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Zones repositorio de zonas.
func (s *Store) Zones() *ZoneRepo { return &ZoneRepo{s: s} }

// Racks repositorio de racks.
func (s *Store) Racks() *RackRepo { return &RackRepo{s: s} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// OrderLines repositorio de líneas de encomienda fuera de transacción.
func (s *Store) OrderLines() *OrderLineRepo { return &OrderLineRepo{s: s} }

// Allocations repositorio de asignaciones fuera de transacción (autocommit).
func (s *Store) Allocations() *AllocationRepo { return &AllocationRepo{s: s} }

// ZoneStock repositorio de stock por zona fuera de transacción (autocommit).
func (s *Store) ZoneStock() *ZoneStockRepo { return &ZoneStockRepo{s: s} }

// AddProduct carga un producto en el catálogo (el catálogo es externo al ledger).
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = &p
}

// AddOrderLine carga una línea de encomienda (las líneas llegan del sistema de compras).
func (s *Store) AddOrderLine(l entity.OrderLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderLines[l.ID] = &l
}
