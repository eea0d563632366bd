package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de cobre. El catálogo es global: no tiene
// tenant; todos los tenants ven los mismos productos y categorías.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Category    string          // tuberia, lamina, alambre, barra, accesorio
	Price       decimal.Decimal // precio de lista por unidad
	Unit        string          // kg, m, unidad
	Stock       int
	MinOrder    int // cantidad mínima por línea de pedido
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
