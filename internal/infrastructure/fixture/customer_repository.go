package fixture

import (
	"context"

	"github.com/google/uuid"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes fixture, acotados al tenant de la sesión.
type CustomerRepo struct {
	st *Store
}

// NewCustomerRepository construye el repositorio fixture de clientes.
func NewCustomerRepository(st *Store) *CustomerRepo {
	return &CustomerRepo{st: st}
}

// GetCustomers lista los clientes del tenant. Solo roles internos.
func (r *CustomerRepo) GetCustomers(ctx context.Context, s *entity.Session) ([]*entity.Customer, error) {
	if !s.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.st.customers {
		if c.TenantID == s.TenantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// GetCustomerByID busca un cliente dentro del tenant de la sesión.
func (r *CustomerRepo) GetCustomerByID(ctx context.Context, s *entity.Session, id string) (*entity.Customer, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, c := range r.st.customers {
		if c.ID == id && c.TenantID == s.TenantID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// CreateCustomer alta de cliente en el tenant de la sesión.
func (r *CustomerRepo) CreateCustomer(ctx context.Context, s *entity.Session, c *entity.Customer) (*entity.Customer, error) {
	if !s.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if c == nil || c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	now := r.st.now()
	cp := *c
	cp.ID = uuid.New().String()
	cp.TenantID = s.TenantID
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.st.customers = append(r.st.customers, &cp)
	out := cp
	return &out, nil
}
