package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/armazem-api/internal/application/dto"
	"github.com/jhoicas/armazem-api/internal/domain"
)

// writeError traduce un error de dominio a su respuesta HTTP.
// Los errores de almacenamiento e internos se registran; el resto son errores del cliente.
func writeError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: reqErr.code, Message: reqErr.message})
	}

	var capErr *domain.CapacityExceededError
	if errors.As(err, &capErr) {
		remaining := capErr.Remaining
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "CAPACITY_EXCEEDED",
			Message:   "la cantidad supera lo pendiente de asignar",
			Remaining: &remaining,
		})
	}
	var availErr *domain.ExceedsAvailableError
	if errors.As(err, &availErr) {
		available := availErr.Available
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:      "EXCEEDS_AVAILABLE",
			Message:   "la cantidad supera lo asignado en el rack",
			Available: &available,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "la cantidad debe ser un número mayor que cero con hasta 3 decimales"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: "el usuario ya existe"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrStorage):
		log.Error().Err(err).Str("path", c.Path()).Str("request_id", GetRequestID(c)).Msg("fallo de almacenamiento")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "almacenamiento no disponible, intente más tarde"})
	}

	log.Error().Err(err).Str("path", c.Path()).Str("request_id", GetRequestID(c)).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
