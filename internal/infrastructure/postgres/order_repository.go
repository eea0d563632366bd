package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/order"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL multi-tenant.
// Toda consulta lleva tenant_id = tenant de la sesión; el backend además
// filtra por fila (RLS) y este repositorio jamás construye consultas que
// crucen tenants. Un pedido de otro tenant sale como ErrNotFound.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, reference, tenant_id, actor_id, customer_id, customer_name, company, status,
		total, notes, address_line, address_city, address_region, address_postal_code,
		shipping_date, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(
		&o.ID, &o.Reference, &o.TenantID, &o.ActorID, &o.CustomerID, &o.CustomerName, &o.Company, &status,
		&o.Total, &o.Notes, &o.Address.Line, &o.Address.City, &o.Address.Region, &o.Address.PostalCode,
		&o.ShippingDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// customerFilter limita las lecturas de un rol customer a su propio
// cliente. Devuelve la cláusula extra y sus argumentos.
func customerFilter(s *entity.Session, argIndex int) (string, []any) {
	if s.Role != entity.RoleCustomer {
		return "", nil
	}
	return fmt.Sprintf(" AND customer_id = $%d", argIndex), []any{s.CustomerID}
}

// GetOrderByReference busca un pedido por referencia dentro del tenant.
func (r *OrderRepo) GetOrderByReference(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE reference = $1 AND tenant_id = $2`
	args := []any{reference, s.TenantID}
	extra, extraArgs := customerFilter(s, 3)
	query += extra
	args = append(args, extraArgs...)

	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.hydrate(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// hydrate carga líneas y auditoría del pedido.
func (r *OrderRepo) hydrate(ctx context.Context, o *entity.Order) error {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, name, price, quantity, is_custom FROM order_items WHERE order_id = $1 ORDER BY position`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Name, &it.Price, &it.Quantity, &it.IsCustom); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	arows, err := r.q.Query(ctx,
		`SELECT id, order_id, actor_id, actor_name, from_status, to_status, at FROM order_audit WHERE order_id = $1 ORDER BY at`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("load order audit: %w", err)
	}
	defer arows.Close()
	for arows.Next() {
		var a entity.OrderAudit
		var from, to string
		if err := arows.Scan(&a.ID, &a.OrderID, &a.ActorID, &a.ActorName, &from, &to, &a.At); err != nil {
			return fmt.Errorf("scan order audit: %w", err)
		}
		a.FromStatus = entity.OrderStatus(from)
		a.ToStatus = entity.OrderStatus(to)
		o.Audit = append(o.Audit, a)
	}
	return arows.Err()
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		if err := r.hydrate(ctx, o); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetAdminOrders listado paginado del tenant. Solo roles internos.
func (r *OrderRepo) GetAdminOrders(ctx context.Context, s *entity.Session, limit, offset int) ([]*entity.Order, error) {
	if !s.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		s.TenantID, limit, offset,
	)
}

// GetRecentOrders últimos pedidos visibles para la sesión.
func (r *OrderRepo) GetRecentOrders(ctx context.Context, s *entity.Session, limit int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1`
	args := []any{s.TenantID}
	extra, extraArgs := customerFilter(s, 2)
	query += extra
	args = append(args, extraArgs...)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)
	return r.list(ctx, query, args...)
}

// GetCustomerHistory historial de un cliente del tenant. Un rol customer
// solo puede consultar el suyo.
func (r *OrderRepo) GetCustomerHistory(ctx context.Context, s *entity.Session, customerID string) ([]*entity.Order, error) {
	if s.Role == entity.RoleCustomer && s.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at DESC`,
		s.TenantID, customerID,
	)
}

// CreateOrder inserta cabecera, líneas y nota de auditoría inicial como
// lote dependiente dentro de una transacción. El total se recalcula aquí
// a partir de las líneas; el del borrador se ignora. Si el Querier no
// puede abrir transacciones, el lote corre directo y un fallo a mitad se
// repara con el borrado compensatorio: primero dependencias, luego
// cabecera, de modo que nunca queda una cabecera huérfana recuperable.
func (r *OrderRepo) CreateOrder(ctx context.Context, s *entity.Session, draft *entity.OrderDraft) (*entity.Order, error) {
	if draft == nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	id := uuid.New().String()
	reference := order.NewReference(now)

	items := make([]entity.OrderItem, len(draft.Items))
	for i, it := range draft.Items {
		it.OrderID = id
		if it.ID == "" {
			it.ID = "custom-" + uuid.New().String()
		}
		items[i] = it
	}
	total := entity.ComputeTotal(items)

	o := &entity.Order{
		ID:           id,
		Reference:    reference,
		TenantID:     s.TenantID,
		ActorID:      s.ActorID,
		CustomerID:   draft.CustomerID,
		CustomerName: draft.CustomerName,
		Company:      draft.Company,
		Status:       entity.StatusPendingValidation,
		Items:        items,
		Total:        total,
		Notes:        draft.Notes,
		Address:      draft.Address,
		ShippingDate: draft.ShippingDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	audit := entity.OrderAudit{
		ID: uuid.New().String(), OrderID: id,
		ActorID: s.ActorID, ActorName: s.Name,
		FromStatus: entity.StatusDraft, ToStatus: entity.StatusPendingValidation,
		At: now,
	}

	inTx, err := runInTx(ctx, r.q, func(q Querier) error {
		return r.insertOrderTree(ctx, q, o, audit)
	})
	if err != nil {
		if !inTx {
			r.compensate(ctx, id)
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	o.Audit = []entity.OrderAudit{audit}
	return o, nil
}

// insertOrderTree inserta cabecera, líneas y la nota de auditoría inicial
// sobre q (transacción o backend directo).
func (r *OrderRepo) insertOrderTree(ctx context.Context, q Querier, o *entity.Order, audit entity.OrderAudit) error {
	_, err := q.Exec(ctx, `
		INSERT INTO orders (id, reference, tenant_id, actor_id, customer_id, customer_name, company, status,
			total, notes, address_line, address_city, address_region, address_postal_code,
			shipping_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		o.ID, o.Reference, o.TenantID, o.ActorID, o.CustomerID, o.CustomerName, o.Company, string(o.Status),
		o.Total, o.Notes, o.Address.Line, o.Address.City, o.Address.Region, o.Address.PostalCode,
		o.ShippingDate, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		_, err := q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, name, price, quantity, is_custom, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.OrderID, it.Name, it.Price, it.Quantity, it.IsCustom, i,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return r.insertAudit(ctx, q, audit)
}

// compensate borrado compensatorio de una creación a medias. Los errores
// aquí solo se ignoran: el error original ya viaja hacia el llamante.
func (r *OrderRepo) compensate(ctx context.Context, orderID string) {
	_, _ = r.q.Exec(ctx, `DELETE FROM order_audit WHERE order_id = $1`, orderID)
	_, _ = r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID)
	_, _ = r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
}

func (r *OrderRepo) insertAudit(ctx context.Context, q Querier, a entity.OrderAudit) error {
	_, err := q.Exec(ctx, `
		INSERT INTO order_audit (id, order_id, actor_id, actor_name, from_status, to_status, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.OrderID, a.ActorID, a.ActorName, string(a.FromStatus), string(a.ToStatus), a.At,
	)
	if err != nil {
		return fmt.Errorf("insert order audit: %w", err)
	}
	return nil
}

// ValidateOrder transición pending_validation → confirmed. Exige rol
// admin o commercial antes de tocar el estado.
func (r *OrderRepo) ValidateOrder(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error) {
	if !s.CanValidateOrders() {
		return nil, domain.ErrForbidden
	}
	return r.UpdateOrderStatus(ctx, s, reference, entity.StatusConfirmed)
}

// UpdateOrderStatus lee el estado actual, valida la transición contra la
// tabla y escribe el nuevo estado más su nota de auditoría. Una transición
// fuera de tabla se rechaza con InvalidTransitionError y no escribe nada.
// Lectura, validación y escritura corren en una transacción con la fila
// bloqueada (FOR UPDATE): dos cambios concurrentes sobre el mismo pedido
// se serializan y la cadena from_status → to_status de la auditoría queda
// siempre consistente con el historial.
func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, s *entity.Session, reference string, newStatus entity.OrderStatus) (*entity.Order, error) {
	if !order.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	query := `SELECT id, status FROM orders WHERE reference = $1 AND tenant_id = $2`
	args := []any{reference, s.TenantID}
	extra, extraArgs := customerFilter(s, 3)
	query += extra
	args = append(args, extraArgs...)
	query += " FOR UPDATE"

	_, err := runInTx(ctx, r.q, func(q Querier) error {
		var orderID, current string
		if err := q.QueryRow(ctx, query, args...).Scan(&orderID, &current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get order status: %w", err)
		}
		if err := order.CheckTransition(entity.OrderStatus(current), newStatus); err != nil {
			return err
		}

		now := time.Now()
		_, err := q.Exec(ctx,
			`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
			orderID, string(newStatus), now,
		)
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return r.insertAudit(ctx, q, entity.OrderAudit{
			ID: uuid.New().String(), OrderID: orderID,
			ActorID: s.ActorID, ActorName: s.Name,
			FromStatus: entity.OrderStatus(current), ToStatus: newStatus,
			At: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrderByReference(ctx, s, reference)
}
