// Package keylock implementa exclusión mutua por clave: operaciones sobre claves
// distintas avanzan en paralelo, las de la misma clave se serializan.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// Locker mapa de locks por clave. El valor cero no es usable; usar New.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New construye un Locker vacío.
func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

// Lock adquiere la clave o falla si ctx termina antes. Devuelve la función para liberarla,
// que debe llamarse exactamente una vez.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return func() { l.release(key, e) }, nil
	case <-ctx.Done():
		l.drop(key, e)
		return nil, ctx.Err()
	}
}

func (l *Locker) release(key string, e *entry) {
	<-e.sem
	l.drop(key, e)
}

// drop descuenta una referencia y borra la entrada cuando nadie la usa.
func (l *Locker) drop(key string, e *entry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()
}

// Len número de claves con lock tomado o en espera.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
