package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los fallos de validación y de límites se detectan antes de mutar nada.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidAmount    = errors.New("cantidad inválida")
	ErrCapacityExceeded = errors.New("cantidad excede lo disponible para asignar")
	ErrExceedsAvailable = errors.New("cantidad a remover excede la disponible")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrUsernameTaken    = errors.New("el username ya está registrado")
	ErrStorage          = errors.New("fallo de almacenamiento")
)

// CapacityExceededError indica cuánto queda por asignar de una línea de encomienda.
type CapacityExceededError struct {
	Remaining decimal.Decimal
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: restan %s unidades", ErrCapacityExceeded.Error(), e.Remaining.String())
}

func (e *CapacityExceededError) Unwrap() error { return ErrCapacityExceeded }

// ExceedsAvailableError indica la cantidad actual del registro que se intentó vaciar de más.
type ExceedsAvailableError struct {
	Available decimal.Decimal
}

func (e *ExceedsAvailableError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrExceedsAvailable.Error(), e.Available.String())
}

func (e *ExceedsAvailableError) Unwrap() error { return ErrExceedsAvailable }

// StorageError envuelve un fallo de infraestructura (conexión, timeout de lock, commit).
// No forma parte de la taxonomía de negocio; el caller puede reintentar si ocurrió antes del commit.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NotFoundf construye un ErrNotFound con el recurso que faltó.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}
