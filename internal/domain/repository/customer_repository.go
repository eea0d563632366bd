package repository

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// CustomerRepository puerto de clientes, acotado al tenant de la sesión.
type CustomerRepository interface {
	GetCustomers(ctx context.Context, s *entity.Session) ([]*entity.Customer, error)
	GetCustomerByID(ctx context.Context, s *entity.Session, id string) (*entity.Customer, error)
	CreateCustomer(ctx context.Context, s *entity.Session, c *entity.Customer) (*entity.Customer, error)
}
