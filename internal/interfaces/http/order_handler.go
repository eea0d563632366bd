package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/dto"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

// OrderHandler expone las operaciones del puerto de pedidos. La sesión
// sale siempre del middleware: no hay sesión global ambiente.
type OrderHandler struct {
	orders repository.OrderRepository
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders repository.OrderRepository) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create crea un pedido. El total del payload se descarta (se recalcula).
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	s := GetSession(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.orders.CreateOrder(c.UserContext(), s, in.ToDraft())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromOrder(created))
}

// GetByReference busca un pedido por su referencia externa.
func (h *OrderHandler) GetByReference(c *fiber.Ctx) error {
	s := GetSession(c)
	reference := c.Params("reference")
	o, err := h.orders.GetOrderByReference(c.UserContext(), s, reference)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrder(o))
}

// AdminList listado paginado del tenant (roles internos).
func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	s := GetSession(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	orders, err := h.orders.GetAdminOrders(c.UserContext(), s, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrders(orders))
}

// Recent últimos pedidos visibles para la sesión.
func (h *OrderHandler) Recent(c *fiber.Ctx) error {
	s := GetSession(c)
	limit := c.QueryInt("limit", 10)
	orders, err := h.orders.GetRecentOrders(c.UserContext(), s, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrders(orders))
}

// CustomerHistory historial de pedidos de un cliente.
func (h *OrderHandler) CustomerHistory(c *fiber.Ctx) error {
	s := GetSession(c)
	customerID := c.Params("id")
	orders, err := h.orders.GetCustomerHistory(c.UserContext(), s, customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrders(orders))
}

// Validate transición pending_validation → confirmed (admin/commercial).
func (h *OrderHandler) Validate(c *fiber.Ctx) error {
	s := GetSession(c)
	reference := c.Params("reference")
	o, err := h.orders.ValidateOrder(c.UserContext(), s, reference)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrder(o))
}

// UpdateStatus aplica una transición de la máquina de estados.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	s := GetSession(c)
	reference := c.Params("reference")
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.orders.UpdateOrderStatus(c.UserContext(), s, reference, entity.OrderStatus(in.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrder(o))
}
