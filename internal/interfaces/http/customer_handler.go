package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/dto"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

// CustomerHandler clientes del tenant.
type CustomerHandler struct {
	customers repository.CustomerRepository
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(customers repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List clientes del tenant (roles internos).
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.customers.GetCustomers(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CustomerResponse, len(customers))
	for i, cu := range customers {
		out[i] = dto.FromCustomer(cu)
	}
	return c.JSON(out)
}

// GetByID ficha de un cliente del tenant.
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	cu, err := h.customers.GetCustomerByID(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromCustomer(cu))
}

// Create alta de cliente (roles internos).
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cu, err := h.customers.CreateCustomer(c.UserContext(), GetSession(c), &entity.Customer{
		Name: in.Name, Company: in.Company, TaxID: in.TaxID, Email: in.Email, Phone: in.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCustomer(cu))
}
