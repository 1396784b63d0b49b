package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armazem-api/internal/application/catalog"
	"github.com/jhoicas/armazem-api/internal/application/dto"
)

// ZoneHandler maneja las rutas de zonas.
type ZoneHandler struct {
	uc *catalog.UseCase
}

// NewZoneHandler construye el handler de zonas.
func NewZoneHandler(uc *catalog.UseCase) *ZoneHandler {
	return &ZoneHandler{uc: uc}
}

// Create godoc
// @Summary      Crear zona
// @Tags         zones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateZoneRequest  true  "nombre y descripción"
// @Success      201   {object}  dto.ZoneResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/zones [post]
func (h *ZoneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateZoneRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateZone(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar zonas
// @Tags         zones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListResponse[dto.ZoneResponse]
// @Router       /api/zones [get]
func (h *ZoneHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListZones(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetByID godoc
// @Summary      Obtener zona
// @Tags         zones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la zona"
// @Success      200  {object}  dto.ZoneResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/zones/{id} [get]
func (h *ZoneHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetZone(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
