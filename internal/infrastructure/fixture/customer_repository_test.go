package fixture_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/infrastructure/fixture"
)

func TestCustomerRepo_GetCustomers(t *testing.T) {
	repo := fixture.NewCustomerRepository(fixture.NewStore(0))
	ctx := context.Background()

	customers, err := repo.GetCustomers(ctx, adminSession())
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	// Un customer no lista la cartera de clientes.
	_, err = repo.GetCustomers(ctx, customerSession("cust-001"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Otro tenant no ve nada.
	otro := &entity.Session{ActorID: "actor-x", Role: entity.RoleAdmin, TenantID: "tenant-otro"}
	vacio, err := repo.GetCustomers(ctx, otro)
	require.NoError(t, err)
	assert.Empty(t, vacio)
}

func TestCustomerRepo_GetCustomerByID(t *testing.T) {
	repo := fixture.NewCustomerRepository(fixture.NewStore(0))
	ctx := context.Background()

	c, err := repo.GetCustomerByID(ctx, adminSession(), "cust-001")
	require.NoError(t, err)
	assert.Equal(t, "Instalaciones Vega SL", c.Name)

	_, err = repo.GetCustomerByID(ctx, adminSession(), "cust-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Cruce de tenant colapsa a not found.
	otro := &entity.Session{ActorID: "actor-x", Role: entity.RoleAdmin, TenantID: "tenant-otro"}
	_, err = repo.GetCustomerByID(ctx, otro, "cust-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerRepo_CreateCustomer(t *testing.T) {
	repo := fixture.NewCustomerRepository(fixture.NewStore(0))
	ctx := context.Background()

	created, err := repo.CreateCustomer(ctx, adminSession(), &entity.Customer{
		Name: "Fontanería Prieto SL", Company: "Fontanería Prieto SL", TaxID: "B33333333",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, fixture.DemoTenantID, created.TenantID)

	all, err := repo.GetCustomers(ctx, adminSession())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = repo.CreateCustomer(ctx, adminSession(), &entity.Customer{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = repo.CreateCustomer(ctx, customerSession("cust-001"), &entity.Customer{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
