package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// OrderItemRequest línea del payload de creación.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	IsCustom  bool            `json:"is_custom"`
}

// AddressRequest bloque de entrega.
type AddressRequest struct {
	Line       string `json:"line"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

// CreateOrderRequest payload de creación de pedido. Total se acepta en el
// JSON por compatibilidad pero se descarta: el servidor siempre recalcula.
type CreateOrderRequest struct {
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name"`
	Company      string             `json:"company"`
	Items        []OrderItemRequest `json:"items"`
	Notes        string             `json:"notes"`
	Address      AddressRequest     `json:"address"`
	ShippingDate *time.Time         `json:"shipping_date"`
	Total        decimal.Decimal    `json:"total"`
}

// ToDraft convierte el payload al borrador de dominio.
func (in CreateOrderRequest) ToDraft() *entity.OrderDraft {
	items := make([]entity.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = entity.OrderItem{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			IsCustom: it.IsCustom,
		}
	}
	return &entity.OrderDraft{
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		Company:      in.Company,
		Items:        items,
		Notes:        in.Notes,
		Address: entity.DeliveryAddress{
			Line:       in.Address.Line,
			City:       in.Address.City,
			Region:     in.Address.Region,
			PostalCode: in.Address.PostalCode,
		},
		ShippingDate: in.ShippingDate,
		Total:        in.Total,
	}
}

// UpdateStatusRequest cambio de estado solicitado.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea persistida.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	IsCustom  bool            `json:"is_custom,omitempty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderAuditResponse nota de auditoría de un cambio de estado.
type OrderAuditResponse struct {
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	At         time.Time `json:"at"`
}

// OrderResponse pedido hidratado.
type OrderResponse struct {
	Reference    string               `json:"reference"`
	Status       string               `json:"status"`
	CustomerID   string               `json:"customer_id,omitempty"`
	CustomerName string               `json:"customer_name,omitempty"`
	Company      string               `json:"company,omitempty"`
	Items        []OrderItemResponse  `json:"items"`
	Total        decimal.Decimal      `json:"total"`
	Notes        string               `json:"notes,omitempty"`
	Address      AddressRequest       `json:"address"`
	ShippingDate *time.Time           `json:"shipping_date,omitempty"`
	Audit        []OrderAuditResponse `json:"audit,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// FromOrder mapea la entidad a la respuesta externa. El id interno de fila
// no se expone: la referencia es el identificador público.
func FromOrder(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ID: it.ID, Name: it.Name, Price: it.Price,
			Quantity: it.Quantity, IsCustom: it.IsCustom, LineTotal: it.LineTotal(),
		}
	}
	audit := make([]OrderAuditResponse, len(o.Audit))
	for i, a := range o.Audit {
		audit[i] = OrderAuditResponse{
			ActorID: a.ActorID, ActorName: a.ActorName,
			FromStatus: string(a.FromStatus), ToStatus: string(a.ToStatus), At: a.At,
		}
	}
	return OrderResponse{
		Reference:    o.Reference,
		Status:       string(o.Status),
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Company:      o.Company,
		Items:        items,
		Total:        o.Total,
		Notes:        o.Notes,
		Address: AddressRequest{
			Line: o.Address.Line, City: o.Address.City,
			Region: o.Address.Region, PostalCode: o.Address.PostalCode,
		},
		ShippingDate: o.ShippingDate,
		Audit:        audit,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// FromOrders mapea un listado.
func FromOrders(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = FromOrder(o)
	}
	return out
}
