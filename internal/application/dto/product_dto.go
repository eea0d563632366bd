package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Stock       int             `json:"stock"`
	MinOrder    int             `json:"min_order"`
}

// FromProduct mapea la entidad a la respuesta externa.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID: p.ID, SKU: p.SKU, Name: p.Name, Description: p.Description,
		Category: p.Category, Price: p.Price, Unit: p.Unit,
		Stock: p.Stock, MinOrder: p.MinOrder,
	}
}

// FromProducts mapea un listado.
func FromProducts(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = FromProduct(p)
	}
	return out
}

// CustomerResponse ficha de cliente.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// FromCustomer mapea la entidad a la respuesta externa.
func FromCustomer(c *entity.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Company: c.Company, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone}
}

// MarketPriceResponse cotización del cobre.
type MarketPriceResponse struct {
	Metal       string          `json:"metal"`
	PricePerKg  decimal.Decimal `json:"price_per_kg"`
	Currency    string          `json:"currency"`
	Source      string          `json:"source"`
	EffectiveAt time.Time       `json:"effective_at"`
}

// FromMarketPrice mapea la entidad a la respuesta externa.
func FromMarketPrice(p *entity.MarketPrice) MarketPriceResponse {
	return MarketPriceResponse{
		Metal: p.Metal, PricePerKg: p.PricePerKg, Currency: p.Currency,
		Source: p.Source, EffectiveAt: p.EffectiveAt,
	}
}
