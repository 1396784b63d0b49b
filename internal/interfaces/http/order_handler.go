package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/armazem-api/internal/application/catalog"
	"github.com/jhoicas/armazem-api/internal/application/dto"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
)

// OrderHandler expone las líneas de encomienda (solo lectura).
type OrderHandler struct {
	uc *catalog.UseCase
}

// NewOrderHandler construye el handler de encomiendas.
func NewOrderHandler(uc *catalog.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar líneas de encomienda
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListResponse[dto.OrderLineResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListOrderLines(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Search godoc
// @Summary      Buscar líneas de encomienda
// @Description  Busca por requisición, encomienda, proveedor, artículo o descripción.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        q    query  string  true  "texto a buscar"
// @Success      200  {object}  dto.ListResponse[dto.OrderLineResponse]
// @Router       /api/orders/search [get]
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.SearchOrderLines(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(list))
}

// Find godoc
// @Summary      Obtener línea por clave
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        requisition_number  query  string  true  "número de requisición"
// @Param        order_number        query  string  true  "número de encomienda"
// @Param        article_code        query  string  true  "código de artículo"
// @Success      200  {object}  dto.OrderLineResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/find [get]
func (h *OrderHandler) Find(c *fiber.Ctx) error {
	key, err := orderLineKeyFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.FindOrderLine(c.Context(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener línea por ID
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.OrderLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrderLine(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// orderLineKeyFromQuery lee y valida la clave de línea de la query string.
func orderLineKeyFromQuery(c *fiber.Ctx) (entity.OrderLineKey, error) {
	in := dto.OrderLineKey{
		RequisitionNumber: c.Query("requisition_number"),
		OrderNumber:       c.Query("order_number"),
		ArticleCode:       c.Query("article_code"),
	}
	if err := validateStruct(&in); err != nil {
		return entity.OrderLineKey{}, err
	}
	return toOrderLineKey(in), nil
}

func toOrderLineKey(k dto.OrderLineKey) entity.OrderLineKey {
	return entity.OrderLineKey{
		RequisitionNumber: k.RequisitionNumber,
		OrderNumber:       k.OrderNumber,
		ArticleCode:       k.ArticleCode,
	}
}
