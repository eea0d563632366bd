package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/dto"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

// MarketPriceHandler cotización del cobre.
type MarketPriceHandler struct {
	prices repository.MarketPriceRepository
}

// NewMarketPriceHandler construye el handler.
func NewMarketPriceHandler(prices repository.MarketPriceRepository) *MarketPriceHandler {
	return &MarketPriceHandler{prices: prices}
}

// Latest cotización más reciente.
func (h *MarketPriceHandler) Latest(c *fiber.Ctx) error {
	p, err := h.prices.GetLatestPrice(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromMarketPrice(p))
}

// History últimos días de cotizaciones (?days=, por defecto 30).
func (h *MarketPriceHandler) History(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	prices, err := h.prices.GetPriceHistory(c.UserContext(), GetSession(c), days)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MarketPriceResponse, len(prices))
	for i, p := range prices {
		out[i] = dto.FromMarketPrice(p)
	}
	return c.JSON(out)
}
