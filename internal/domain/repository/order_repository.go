package repository

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// OrderRepository puerto de pedidos. Todas las lecturas y escrituras están
// acotadas al tenant de la sesión; un pedido de otro tenant es ErrNotFound.
//
// Contratos de escritura:
//   - CreateOrder recalcula Total a partir de las líneas (nunca acepta el
//     total del cliente), genera la referencia, persiste cabecera y líneas
//     como lote dependiente y revierte la cabecera si el lote falla.
//     Devuelve el pedido hidratado completo. Items vacío es legal aquí
//     (pedidos de cotización); esa política vive en el workspace.
//   - UpdateOrderStatus consulta el estado actual y rechaza cualquier
//     transición fuera de la tabla (order.CheckTransition) con un error
//     que enumera los estados permitidos. Cada cambio añade una nota de
//     auditoría, nunca reescribe el historial.
//   - ValidateOrder es la transición pending_validation → confirmed y
//     exige rol admin o commercial antes de tocar el estado.
type OrderRepository interface {
	GetOrderByReference(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error)
	// GetAdminOrders listado completo del tenant para roles internos.
	GetAdminOrders(ctx context.Context, s *entity.Session, limit, offset int) ([]*entity.Order, error)
	// GetRecentOrders últimos pedidos visibles para la sesión: los del
	// cliente vinculado si el rol es customer, los del tenant si es staff.
	GetRecentOrders(ctx context.Context, s *entity.Session, limit int) ([]*entity.Order, error)
	GetCustomerHistory(ctx context.Context, s *entity.Session, customerID string) ([]*entity.Order, error)

	CreateOrder(ctx context.Context, s *entity.Session, draft *entity.OrderDraft) (*entity.Order, error)
	ValidateOrder(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, s *entity.Session, reference string, newStatus entity.OrderStatus) (*entity.Order, error)
}
