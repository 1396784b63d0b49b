package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armazem-api/internal/application/catalog"
	"github.com/jhoicas/armazem-api/internal/application/dto"
	"github.com/jhoicas/armazem-api/internal/application/labels"
)

// RackHandler maneja las rutas de racks y su etiqueta imprimible.
type RackHandler struct {
	uc     *catalog.UseCase
	labels *labels.UseCase
}

// NewRackHandler construye el handler de racks.
func NewRackHandler(uc *catalog.UseCase, labelsUC *labels.UseCase) *RackHandler {
	return &RackHandler{uc: uc, labels: labelsUC}
}

// Create godoc
// @Summary      Crear rack
// @Description  El código se genera como ZONA-corredor-rack-nivel-columna.
// @Tags         racks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRackRequest  true  "zona y posición"
// @Success      201   {object}  dto.RackResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/racks [post]
func (h *RackHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRackRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateRack(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar racks
// @Tags         racks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListResponse[dto.RackResponse]
// @Router       /api/racks [get]
func (h *RackHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListRacks(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetByID godoc
// @Summary      Obtener rack
// @Tags         racks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del rack"
// @Success      200  {object}  dto.RackResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/racks/{id} [get]
func (h *RackHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetRack(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener rack por código
// @Tags         racks
// @Produce      json
// @Security     BearerAuth
// @Param        code  path  string  true  "Código del rack"
// @Success      200   {object}  dto.RackResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/racks/code/{code} [get]
func (h *RackHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetRackByCode(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Label godoc
// @Summary      Etiqueta PDF del rack
// @Description  Código, QR y líneas de encomienda asignadas al rack.
// @Tags         racks
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        code  path  string  true  "Código del rack"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/racks/code/{code}/label.pdf [get]
func (h *RackHandler) Label(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.labels.RackLabelPDF(c.Context(), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
