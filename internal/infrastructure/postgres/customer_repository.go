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
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes sobre PostgreSQL, siempre filtrados por el tenant
// de la sesión.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, name, company, tax_id, email, phone, created_at, updated_at`

// GetCustomers lista los clientes del tenant. Solo roles internos.
func (r *CustomerRepo) GetCustomers(ctx context.Context, s *entity.Session) ([]*entity.Customer, error) {
	if !s.IsStaff() {
		return nil, domain.ErrForbidden
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = $1 ORDER BY name`, s.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Company, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GetCustomerByID busca un cliente dentro del tenant de la sesión.
func (r *CustomerRepo) GetCustomerByID(ctx context.Context, s *entity.Session, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1 AND tenant_id = $2`, id, s.TenantID,
	).Scan(&c.ID, &c.TenantID, &c.Name, &c.Company, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// CreateCustomer alta de cliente en el tenant de la sesión.
func (r *CustomerRepo) CreateCustomer(ctx context.Context, s *entity.Session, c *entity.Customer) (*entity.Customer, error) {
	if !s.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if c == nil || c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cp := *c
	cp.ID = uuid.New().String()
	cp.TenantID = s.TenantID
	cp.CreatedAt = now
	cp.UpdatedAt = now
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, tenant_id, name, company, tax_id, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		cp.ID, cp.TenantID, cp.Name, cp.Company, cp.TaxID, cp.Email, cp.Phone, cp.CreatedAt, cp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return &cp, nil
}
