package fixture

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/order"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos fixture. Aplica la misma máquina de estados y el mismo
// scoping por tenant que el backend en red: la tabla de transiciones es
// obligatoria en toda implementación, no solo en la de red.
type OrderRepo struct {
	st *Store
}

// NewOrderRepository construye el repositorio fixture de pedidos.
func NewOrderRepository(st *Store) *OrderRepo {
	return &OrderRepo{st: st}
}

// cloneOrder copia profunda para que el llamante no mute el almacén.
func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = make([]entity.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	cp.Audit = make([]entity.OrderAudit, len(o.Audit))
	copy(cp.Audit, o.Audit)
	return &cp
}

// visible indica si la sesión puede ver el pedido: mismo tenant siempre;
// un rol customer solo ve los pedidos de su propio cliente.
func visible(s *entity.Session, o *entity.Order) bool {
	if o.TenantID != s.TenantID {
		return false
	}
	if s.Role == entity.RoleCustomer {
		return s.CustomerID != "" && o.CustomerID == s.CustomerID
	}
	return true
}

// GetOrderByReference busca un pedido por su referencia externa.
func (r *OrderRepo) GetOrderByReference(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	o, ok := r.st.orders[reference]
	if !ok || !visible(s, o) {
		return nil, domain.ErrNotFound
	}
	return cloneOrder(o), nil
}

// listLocked requiere st.mu tomado. Devuelve los pedidos visibles para la
// sesión, más recientes primero.
func (r *OrderRepo) listLocked(s *entity.Session) []*entity.Order {
	var out []*entity.Order
	for _, o := range r.st.orders {
		if visible(s, o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// GetAdminOrders listado paginado del tenant. Solo roles internos.
func (r *OrderRepo) GetAdminOrders(ctx context.Context, s *entity.Session, limit, offset int) ([]*entity.Order, error) {
	if !s.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	all := r.listLocked(s)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.Order, len(all))
	for i, o := range all {
		out[i] = cloneOrder(o)
	}
	return out, nil
}

// GetRecentOrders últimos pedidos visibles para la sesión.
func (r *OrderRepo) GetRecentOrders(ctx context.Context, s *entity.Session, limit int) ([]*entity.Order, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	all := r.listLocked(s)
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.Order, len(all))
	for i, o := range all {
		out[i] = cloneOrder(o)
	}
	return out, nil
}

// GetCustomerHistory historial de pedidos de un cliente. Un rol customer
// solo puede consultar su propio historial.
func (r *OrderRepo) GetCustomerHistory(ctx context.Context, s *entity.Session, customerID string) ([]*entity.Order, error) {
	if s.Role == entity.RoleCustomer && s.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.listLocked(s) {
		if o.CustomerID == customerID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

// CreateOrder crea el pedido en pending_validation: recalcula el total a
// partir de las líneas (el total del borrador se ignora), genera la
// referencia corta del modo demo y estampa la nota de auditoría inicial.
func (r *OrderRepo) CreateOrder(ctx context.Context, s *entity.Session, draft *entity.OrderDraft) (*entity.Order, error) {
	if draft == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	now := r.st.now()
	reference := order.NewFixtureReference(now, r.st.rnd)
	for _, exists := r.st.orders[reference]; exists; _, exists = r.st.orders[reference] {
		reference = order.NewFixtureReference(now, r.st.rnd)
	}

	id := uuid.New().String()
	items := make([]entity.OrderItem, len(draft.Items))
	for i, it := range draft.Items {
		it.OrderID = id
		if it.ID == "" {
			it.ID = "custom-" + uuid.New().String()
		}
		items[i] = it
	}

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
		Total:        entity.ComputeTotal(items),
		Notes:        draft.Notes,
		Address:      draft.Address,
		ShippingDate: draft.ShippingDate,
		Audit: []entity.OrderAudit{{
			ID: uuid.New().String(), OrderID: id,
			ActorID: s.ActorID, ActorName: s.Name,
			FromStatus: entity.StatusDraft, ToStatus: entity.StatusPendingValidation,
			At: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.st.orders[reference] = o
	return cloneOrder(o), nil
}

// ValidateOrder transición pending_validation → confirmed. Exige rol
// admin o commercial antes de tocar el estado.
func (r *OrderRepo) ValidateOrder(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error) {
	if !s.CanValidateOrders() {
		return nil, domain.ErrForbidden
	}
	return r.UpdateOrderStatus(ctx, s, reference, entity.StatusConfirmed)
}

// UpdateOrderStatus aplica una transición de la tabla; cualquier otra se
// rechaza con InvalidTransitionError y el estado queda intacto. Cada
// cambio añade una nota de auditoría.
func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, s *entity.Session, reference string, newStatus entity.OrderStatus) (*entity.Order, error) {
	if !order.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	o, ok := r.st.orders[reference]
	if !ok || !visible(s, o) {
		return nil, domain.ErrNotFound
	}
	if err := order.CheckTransition(o.Status, newStatus); err != nil {
		return nil, err
	}
	now := r.st.now()
	o.Audit = append(o.Audit, entity.OrderAudit{
		ID: uuid.New().String(), OrderID: o.ID,
		ActorID: s.ActorID, ActorName: s.Name,
		FromStatus: o.Status, ToStatus: newStatus,
		At: now,
	})
	o.Status = newStatus
	o.UpdatedAt = now
	return cloneOrder(o), nil
}
