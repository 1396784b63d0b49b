package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/armazem-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// storageErr envuelve fallos del driver como StorageError para que el caller los distinga
// de los errores de negocio.
func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

// validUUID evita mandar al servidor ids mal formados (Postgres respondería 22P02).
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
