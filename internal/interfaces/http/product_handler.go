package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/dto"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

// ProductHandler catálogo de cobre (lecturas).
type ProductHandler struct {
	products repository.ProductRepository
}

// NewProductHandler construye el handler.
func NewProductHandler(products repository.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

// List catálogo completo.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.products.GetProducts(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromProducts(products))
}

// Categories categorías del catálogo.
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.products.GetCategories(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cats)
}

// ByCategory productos de una categoría.
func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	products, err := h.products.GetProductsByCategory(c.UserContext(), GetSession(c), c.Params("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromProducts(products))
}

// Search búsqueda insensible a mayúsculas y acentos (?q=).
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro q requerido"})
	}
	products, err := h.products.SearchProducts(c.UserContext(), GetSession(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromProducts(products))
}
