package workspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/workspace"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/infrastructure/fixture"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tuberia() *entity.Product {
	return &entity.Product{
		ID: "prod-001", Name: "Tubería de cobre 15mm",
		Price: dec("24.90"), Unit: "m", Stock: 1200, MinOrder: 10,
	}
}

func lamina() *entity.Product {
	return &entity.Product{
		ID: "prod-003", Name: "Lámina de cobre 0.5mm",
		Price: dec("112.00"), Unit: "unidad", Stock: 150, MinOrder: 2,
	}
}

func newWorkspace() *workspace.Workspace {
	return workspace.New(fixture.NewOrderRepository(fixture.NewStore(0)))
}

// Añadir el mismo producto dos veces incrementa la cantidad, no duplica
// la línea.
func TestAddItem_MismaLineaIncrementa(t *testing.T) {
	w := newWorkspace()
	require.NoError(t, w.AddItem(tuberia(), 10))
	require.NoError(t, w.AddItem(tuberia(), 5))

	lines := w.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 15, lines[0].Quantity)
	assert.True(t, w.Total().Equal(dec("373.50")), "total = %s", w.Total())
}

func TestAddItem_CantidadInvalida(t *testing.T) {
	w := newWorkspace()
	assert.ErrorIs(t, w.AddItem(tuberia(), 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, w.AddItem(nil, 3), domain.ErrInvalidInput)
	assert.Empty(t, w.Lines())
}

// Cantidad 0 elimina la línea; RemoveItem es el mismo camino.
func TestSetQuantity_CeroElimina(t *testing.T) {
	w := newWorkspace()
	require.NoError(t, w.AddItem(tuberia(), 10))
	require.NoError(t, w.AddItem(lamina(), 2))

	require.NoError(t, w.SetQuantity("prod-001", 0))
	lines := w.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "prod-003", lines[0].ProductID)

	require.NoError(t, w.RemoveItem("prod-003"))
	assert.Empty(t, w.Lines())
	assert.True(t, w.Total().IsZero())

	assert.ErrorIs(t, w.SetQuantity("prod-999", 3), domain.ErrNotFound)
	assert.ErrorIs(t, w.SetQuantity("prod-001", -1), domain.ErrInvalidInput)
}

// El total corriente refleja cada mutación.
func TestTotal_Corriente(t *testing.T) {
	w := newWorkspace()
	require.NoError(t, w.AddItem(tuberia(), 10)) // 249.00
	require.NoError(t, w.AddItem(lamina(), 2))   // 224.00
	assert.True(t, w.Total().Equal(dec("473.00")), "total = %s", w.Total())

	require.NoError(t, w.SetQuantity("prod-003", 3)) // 336.00
	assert.True(t, w.Total().Equal(dec("585.00")), "total = %s", w.Total())
}

// Pedido mínimo y stock bloquean el envío; las líneas custom están exentas.
func TestValidate(t *testing.T) {
	w := newWorkspace()
	require.NoError(t, w.AddItem(tuberia(), 5)) // MinOrder 10
	err := w.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "pedido mínimo")

	require.NoError(t, w.SetQuantity("prod-001", 2000)) // Stock 1200
	err = w.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "stock")

	require.NoError(t, w.SetQuantity("prod-001", 100))
	assert.NoError(t, w.Validate())

	// Una línea custom con cantidad 1 no dispara mínimos ni stock.
	_, err = w.AddCustomItem("Corte a medida 3x40", 1)
	require.NoError(t, err)
	assert.NoError(t, w.Validate())
}

func TestAddCustomItem(t *testing.T) {
	w := newWorkspace()
	id, err := w.AddCustomItem("Pletina especial", 4)
	require.NoError(t, err)
	assert.Regexp(t, `^custom-`, id)

	lines := w.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].IsCustom)
	assert.True(t, lines[0].Price.IsZero())

	_, err = w.AddCustomItem("", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cada mutación actualiza LastSaved.
func TestLastSaved(t *testing.T) {
	w := newWorkspace()
	antes := w.LastSaved()
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, w.AddItem(tuberia(), 10))
	assert.True(t, w.LastSaved().After(antes))

	antes = w.LastSaved()
	time.Sleep(2 * time.Millisecond)
	w.SetNotes("entregar en muelle 3")
	assert.True(t, w.LastSaved().After(antes))
}

// Submit valida, crea el pedido y pasa el borrador a pending_validation
// con la referencia definitiva.
func TestSubmit(t *testing.T) {
	store := fixture.NewStore(0)
	repo := fixture.NewOrderRepository(store)
	w := workspace.New(repo)
	ctx := context.Background()

	s := &entity.Session{
		ActorID: "actor-cust", Role: entity.RoleCustomer,
		TenantID: fixture.DemoTenantID, Name: "Cliente Vega",
		CustomerID: "cust-001",
	}

	require.NoError(t, w.AddItem(tuberia(), 10))
	w.SetCompany("Instalaciones Vega SL")
	w.SetNotes("obra calle Mayor")
	w.SetAddress(entity.DeliveryAddress{Line: "C/ Mayor 1", City: "Madrid", Region: "Madrid", PostalCode: "28001"})
	w.SetShippingDate(time.Now().AddDate(0, 0, 7))

	provisional := w.Reference()
	assert.Equal(t, entity.StatusDraft, w.Status())

	created, err := w.Submit(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendingValidation, created.Status)
	assert.Equal(t, "cust-001", created.CustomerID)
	assert.True(t, created.Total.Equal(dec("249.00")))

	// El borrador adopta la referencia persistida.
	assert.Equal(t, entity.StatusPendingValidation, w.Status())
	assert.Equal(t, created.Reference, w.Reference())
	assert.NotEqual(t, provisional, w.Reference())

	// El pedido existe en el backend.
	got, err := repo.GetOrderByReference(ctx, s, created.Reference)
	require.NoError(t, err)
	assert.Equal(t, "obra calle Mayor", got.Notes)
	assert.Equal(t, "Madrid", got.Address.City)

	// Reenviar el mismo borrador es conflicto.
	_, err = w.Submit(ctx, s)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Un borrador inválido no llega al backend.
func TestSubmit_BloqueadoPorValidacion(t *testing.T) {
	store := fixture.NewStore(0)
	repo := fixture.NewOrderRepository(store)
	w := workspace.New(repo)

	s := &entity.Session{ActorID: "actor-admin", Role: entity.RoleAdmin, TenantID: fixture.DemoTenantID, Name: "Admin Demo"}
	require.NoError(t, w.AddItem(tuberia(), 3)) // por debajo del mínimo

	_, err := w.Submit(context.Background(), s)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.StatusDraft, w.Status())

	recent, err := repo.GetRecentOrders(context.Background(), s, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
