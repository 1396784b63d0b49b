package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armazem-api/internal/application/allocation"
	"github.com/jhoicas/armazem-api/internal/application/dto"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/domain/repository"
)

// AllocationHandler maneja el ledger de asignaciones de líneas de encomienda a racks.
type AllocationHandler struct {
	uc *allocation.UseCase
}

// NewAllocationHandler construye el handler de asignaciones.
func NewAllocationHandler(uc *allocation.UseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// Allocate godoc
// @Summary      Asignar cantidad a un rack
// @Description  Suma la cantidad si la línea ya está en el rack. Nunca se supera lo encomendado sumando todos los racks.
// @Tags         rack-allocations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AllocateRequest  true  "línea, rack y cantidad"
// @Success      200   {object}  dto.AllocateResponse
// @Success      201   {object}  dto.AllocateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "CAPACITY_EXCEEDED con remaining"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/rack-allocations/allocate [post]
func (h *AllocationHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	amount, err := in.Quantity.Decimal()
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.Allocate(c.Context(), allocation.AllocateInput{
		OrderLine: toOrderLineKey(in.OrderLineKey),
		RackCode:  strings.TrimSpace(in.RackCode),
		Amount:    amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.AllocateResponse{
		RackCode:     strings.TrimSpace(in.RackCode),
		RackQuantity: res.RackTotal,
		Remaining:    res.Remaining,
		Created:      res.Created,
	})
}

// Deallocate godoc
// @Summary      Retirar cantidad de un rack
// @Description  Retirar exactamente lo asignado (o remove_all) elimina el registro.
// @Tags         rack-allocations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DeallocateRequest  true  "línea, rack y cantidad"
// @Success      200   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "EXCEEDS_AVAILABLE con available"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/rack-allocations/deallocate [post]
func (h *AllocationHandler) Deallocate(c *fiber.Ctx) error {
	var in dto.DeallocateRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	amount, err := in.Quantity.Decimal()
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.uc.Deallocate(c.Context(), allocation.DeallocateInput{
		OrderLine: toOrderLineKey(in.OrderLineKey),
		RackCode:  strings.TrimSpace(in.RackCode),
		Amount:    amount,
		Entire:    in.RemoveAll,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockChangeResponse{Removed: res.Removed, Quantity: res.RackTotal})
}

// Allocated godoc
// @Summary      Total asignado de una línea
// @Description  Suma de todos los racks; 0 si la línea no tiene asignaciones.
// @Tags         rack-allocations
// @Produce      json
// @Security     BearerAuth
// @Param        requisition_number  query  string  true  "número de requisición"
// @Param        order_number        query  string  true  "número de encomienda"
// @Param        article_code        query  string  true  "código de artículo"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/rack-allocations/allocated [get]
func (h *AllocationHandler) Allocated(c *fiber.Ctx) error {
	key, err := orderLineKeyFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	qty, err := h.uc.QueryAllocated(c.Context(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{Quantity: qty})
}

// RackQuantity godoc
// @Summary      Cantidad de una línea en un rack
// @Description  0 si el rack o la asignación no existen.
// @Tags         rack-allocations
// @Produce      json
// @Security     BearerAuth
// @Param        rack_code           query  string  true  "código del rack"
// @Param        requisition_number  query  string  true  "número de requisición"
// @Param        order_number        query  string  true  "número de encomienda"
// @Param        article_code        query  string  true  "código de artículo"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/rack-allocations/rack-quantity [get]
func (h *AllocationHandler) RackQuantity(c *fiber.Ctx) error {
	in := dto.RackQuantityQuery{
		OrderLineKey: dto.OrderLineKey{
			RequisitionNumber: c.Query("requisition_number"),
			OrderNumber:       c.Query("order_number"),
			ArticleCode:       c.Query("article_code"),
		},
		RackCode: strings.TrimSpace(c.Query("rack_code")),
	}
	if err := validateStruct(&in); err != nil {
		return writeError(c, err)
	}
	qty, err := h.uc.RackQuantity(c.Context(), in.RackCode, toOrderLineKey(in.OrderLineKey))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{Quantity: qty})
}

// List godoc
// @Summary      Listar asignaciones
// @Tags         rack-allocations
// @Produce      json
// @Security     BearerAuth
// @Param        rack_code  query  string  false  "filtrar por rack"
// @Success      200  {object}  dto.ListResponse[dto.AllocationResponse]
// @Router       /api/rack-allocations [get]
func (h *AllocationHandler) List(c *fiber.Ctx) error {
	return h.list(c, repository.AllocationFilter{RackCode: strings.TrimSpace(c.Query("rack_code"))})
}

// Search godoc
// @Summary      Buscar asignaciones
// @Description  Busca por requisición, encomienda, proveedor, artículo o rack.
// @Tags         rack-allocations
// @Produce      json
// @Security     BearerAuth
// @Param        q          query  string  true   "texto a buscar"
// @Param        rack_code  query  string  false  "filtrar por rack"
// @Success      200  {object}  dto.ListResponse[dto.AllocationResponse]
// @Router       /api/rack-allocations/search [get]
func (h *AllocationHandler) Search(c *fiber.Ctx) error {
	return h.list(c, repository.AllocationFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		RackCode: strings.TrimSpace(c.Query("rack_code")),
	})
}

// ByRack godoc
// @Summary      Asignaciones de un rack
// @Tags         rack-allocations
// @Produce      json
// @Security     BearerAuth
// @Param        code  path  string  true  "código del rack"
// @Success      200   {object}  dto.ListResponse[dto.AllocationResponse]
// @Router       /api/rack-allocations/rack/{code} [get]
func (h *AllocationHandler) ByRack(c *fiber.Ctx) error {
	return h.list(c, repository.AllocationFilter{RackCode: strings.TrimSpace(c.Params("code"))})
}

func (h *AllocationHandler) list(c *fiber.Ctx, filter repository.AllocationFilter) error {
	views, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.AllocationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toAllocationResponse(v))
	}
	return c.JSON(dto.NewList(out))
}

func toAllocationResponse(v entity.AllocationView) dto.AllocationResponse {
	return dto.AllocationResponse{
		RackID:             v.Key.RackID,
		RackCode:           v.RackCode,
		Aisle:              v.Aisle,
		Rack:               v.Rack,
		Level:              v.Level,
		Column:             v.Column,
		RequisitionNumber:  v.Key.OrderLine.RequisitionNumber,
		OrderNumber:        v.Key.OrderLine.OrderNumber,
		ArticleCode:        v.Key.OrderLine.ArticleCode,
		SupplierName:       v.SupplierName,
		ArticleDescription: v.ArticleDescription,
		Unit:               v.Unit,
		QuantityOrdered:    v.QuantityOrdered,
		Quantity:           v.Quantity,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}
