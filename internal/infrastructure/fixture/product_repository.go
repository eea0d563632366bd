package fixture

import (
	"context"
	"sort"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/normalize"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo fixture. El catálogo es global; la sesión se recibe
// por uniformidad del contrato.
type ProductRepo struct {
	st *Store
}

// NewProductRepository construye el repositorio fixture de productos.
func NewProductRepository(st *Store) *ProductRepo {
	return &ProductRepo{st: st}
}

// GetProducts devuelve el catálogo completo.
func (r *ProductRepo) GetProducts(ctx context.Context, s *entity.Session) ([]*entity.Product, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	out := make([]*entity.Product, len(r.st.products))
	for i, p := range r.st.products {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

// GetCategories devuelve las categorías distintas, ordenadas.
func (r *ProductRepo) GetCategories(ctx context.Context, s *entity.Session) ([]string, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	seen := make(map[string]bool)
	var cats []string
	for _, p := range r.st.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// GetProductsByCategory filtra el catálogo por categoría exacta.
func (r *ProductRepo) GetProductsByCategory(ctx context.Context, s *entity.Session, category string) ([]*entity.Product, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.st.products {
		if p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// SearchProducts busca en nombre, SKU y descripción sin distinguir
// mayúsculas ni acentos.
func (r *ProductRepo) SearchProducts(ctx context.Context, s *entity.Session, query string) ([]*entity.Product, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.st.products {
		if normalize.Contains(p.Name, query) || normalize.Contains(p.SKU, query) || normalize.Contains(p.Description, query) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
