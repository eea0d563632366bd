package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido. La tabla de
// transiciones vive en internal/domain/order.
type OrderStatus string

const (
	StatusDraft             OrderStatus = "draft"
	StatusPendingValidation OrderStatus = "pending_validation"
	StatusConfirmed         OrderStatus = "confirmed"
	StatusPreparing         OrderStatus = "preparing"
	StatusShipped           OrderStatus = "shipped"
	StatusDelivered         OrderStatus = "delivered"
	StatusCancelled         OrderStatus = "cancelled"
)

// Order pedido persistido. ID es el identificador interno de fila;
// Reference (PED-...) es el identificador público que viaja en la API.
type Order struct {
	ID           string
	Reference    string
	TenantID     string
	ActorID      string // actor que creó el pedido
	CustomerID   string
	CustomerName string
	Company      string
	Status       OrderStatus
	Items        []OrderItem
	Total        decimal.Decimal
	Notes        string
	Address      DeliveryAddress
	ShippingDate *time.Time
	Audit        []OrderAudit
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem línea de pedido. Las líneas custom (material a cotizar) llevan
// IsCustom y un id con prefijo custom-.
type OrderItem struct {
	ID       string
	OrderID  string
	Name     string
	Price    decimal.Decimal
	Quantity int
	IsCustom bool
}

// LineTotal subtotal de la línea.
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ComputeTotal suma de los subtotales. Los repositorios siempre recalculan
// el total con esta función; el total que venga del cliente se descarta.
func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// OrderAudit nota de auditoría de un cambio de estado. El historial es de
// solo añadido: nunca se edita ni se borra una nota.
type OrderAudit struct {
	ID         string
	OrderID    string
	ActorID    string
	ActorName  string
	FromStatus OrderStatus
	ToStatus   OrderStatus
	At         time.Time
}

// DeliveryAddress dirección de entrega del pedido.
type DeliveryAddress struct {
	Line       string
	City       string
	Region     string
	PostalCode string
}

// OrderDraft borrador que llega a CreateOrder. Total se transporta por
// compatibilidad con el payload pero los repositorios lo ignoran.
type OrderDraft struct {
	CustomerID   string
	CustomerName string
	Company      string
	Items        []OrderItem
	Notes        string
	Address      DeliveryAddress
	ShippingDate *time.Time
	Total        decimal.Decimal
}
