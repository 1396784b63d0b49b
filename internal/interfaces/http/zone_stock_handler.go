package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armazem-api/internal/application/dto"
	"github.com/jhoicas/armazem-api/internal/application/zonestock"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

// ZoneStockHandler maneja el stock de producto terminado por zona.
type ZoneStockHandler struct {
	uc *zonestock.UseCase
}

// NewZoneStockHandler construye el handler de stock por zona.
func NewZoneStockHandler(uc *zonestock.UseCase) *ZoneStockHandler {
	return &ZoneStockHandler{uc: uc}
}

// Add godoc
// @Summary      Añadir stock a una zona
// @Tags         zone-stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AddStockRequest  true  "producto, zona y cantidad"
// @Success      200   {object}  dto.QuantityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/zone-stock/add [post]
func (h *ZoneStockHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	amount, err := in.Quantity.Decimal()
	if err != nil {
		return writeError(c, err)
	}
	total, err := h.uc.AddStock(c.Context(), in.ProductID, in.ZoneID, amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{Quantity: total})
}

// Remove godoc
// @Summary      Retirar stock de una zona
// @Description  Retirar más de lo que hay vacía el registro sin error.
// @Tags         zone-stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RemoveStockRequest  true  "producto, zona y cantidad"
// @Success      200   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/zone-stock/remove [post]
func (h *ZoneStockHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveStockRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	amount, err := in.Quantity.Decimal()
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.RemoveStock(c.Context(), in.ProductID, in.ZoneID, amount, in.RemoveAll)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockChangeResponse{Removed: res.Removed, Quantity: res.Total})
}

// Quantity godoc
// @Summary      Stock de un producto en una zona
// @Description  0 si no hay registro.
// @Tags         zone-stock
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  query  string  true  "ID del producto"
// @Param        zone_id     query  string  true  "ID de la zona"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/zone-stock/quantity [get]
func (h *ZoneStockHandler) Quantity(c *fiber.Ctx) error {
	in := dto.StockQuery{ProductID: c.Query("product_id"), ZoneID: c.Query("zone_id")}
	if err := validateStruct(&in); err != nil {
		return writeError(c, err)
	}
	qty, err := h.uc.QueryStock(c.Context(), in.ProductID, in.ZoneID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{Quantity: qty})
}

// List godoc
// @Summary      Listar stock por zona
// @Tags         zone-stock
// @Produce      json
// @Security     BearerAuth
// @Param        zone_id  query  string  false  "filtrar por zona"
// @Success      200  {object}  dto.ListResponse[dto.ZoneStockResponse]
// @Router       /api/zone-stock [get]
func (h *ZoneStockHandler) List(c *fiber.Ctx) error {
	return h.list(c, repository.ZoneStockFilter{ZoneID: strings.TrimSpace(c.Query("zone_id"))})
}

// Search godoc
// @Summary      Buscar stock por zona
// @Description  Busca por descripción o plano del producto, o nombre de zona.
// @Tags         zone-stock
// @Produce      json
// @Security     BearerAuth
// @Param        q        query  string  true   "texto a buscar"
// @Param        zone_id  query  string  false  "filtrar por zona"
// @Success      200  {object}  dto.ListResponse[dto.ZoneStockResponse]
// @Router       /api/zone-stock/search [get]
func (h *ZoneStockHandler) Search(c *fiber.Ctx) error {
	return h.list(c, repository.ZoneStockFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		ZoneID: strings.TrimSpace(c.Query("zone_id")),
	})
}

func (h *ZoneStockHandler) list(c *fiber.Ctx, filter repository.ZoneStockFilter) error {
	views, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ZoneStockResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toZoneStockResponse(v))
	}
	return c.JSON(dto.NewList(out))
}

func toZoneStockResponse(v entity.ZoneStockView) dto.ZoneStockResponse {
	return dto.ZoneStockResponse{
		ProductID:          v.Key.ProductID,
		ProductDescription: v.ProductDescription,
		ProductDrawing:     v.ProductDrawing,
		ZoneID:             v.Key.ZoneID,
		ZoneName:           v.ZoneName,
		ZoneDescription:    v.ZoneDescription,
		Quantity:           v.Quantity,
		UpdatedAt:          v.UpdatedAt,
	}
}
