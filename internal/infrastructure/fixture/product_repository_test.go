package fixture_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/infrastructure/fixture"
)

func TestProductRepo_GetProducts(t *testing.T) {
	repo := fixture.NewProductRepository(fixture.NewStore(0))
	products, err := repo.GetProducts(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Len(t, products, 8)
}

func TestProductRepo_GetCategories(t *testing.T) {
	repo := fixture.NewProductRepository(fixture.NewStore(0))
	cats, err := repo.GetCategories(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Equal(t, []string{"accesorio", "alambre", "barra", "lamina", "tuberia"}, cats)
}

func TestProductRepo_GetProductsByCategory(t *testing.T) {
	repo := fixture.NewProductRepository(fixture.NewStore(0))
	products, err := repo.GetProductsByCategory(context.Background(), adminSession(), "tuberia")
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, "tuberia", p.Category)
	}

	ninguno, err := repo.GetProductsByCategory(context.Background(), adminSession(), "plomo")
	require.NoError(t, err)
	assert.Empty(t, ninguno)
}

// La búsqueda no distingue mayúsculas ni acentos: "tuberia" encuentra
// "Tubería" y viceversa.
func TestProductRepo_SearchProducts(t *testing.T) {
	repo := fixture.NewProductRepository(fixture.NewStore(0))
	ctx := context.Background()

	sinAcentos, err := repo.SearchProducts(ctx, adminSession(), "tuberia")
	require.NoError(t, err)
	assert.Len(t, sinAcentos, 2)

	conAcentos, err := repo.SearchProducts(ctx, adminSession(), "TUBERÍA")
	require.NoError(t, err)
	assert.Equal(t, len(sinAcentos), len(conAcentos))

	// También busca por SKU.
	porSKU, err := repo.SearchProducts(ctx, adminSession(), "cu-lam")
	require.NoError(t, err)
	assert.Len(t, porSKU, 2)

	nada, err := repo.SearchProducts(ctx, adminSession(), "aluminio")
	require.NoError(t, err)
	assert.Empty(t, nada)
}
