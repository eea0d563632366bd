package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/normalize"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo sobre PostgreSQL. El catálogo es global: las
// consultas no filtran por tenant (los productos no tienen tenant_id).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, name, description, category, price, unit, stock, min_order, created_at, updated_at`

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price,
			&p.Unit, &p.Stock, &p.MinOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// GetProducts catálogo completo ordenado por categoría y nombre.
func (r *ProductRepo) GetProducts(ctx context.Context, s *entity.Session) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

// GetCategories categorías distintas del catálogo.
func (r *ProductRepo) GetCategories(ctx context.Context, s *entity.Session) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetProductsByCategory productos de una categoría.
func (r *ProductRepo) GetProductsByCategory(ctx context.Context, s *entity.Session, category string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY name`, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return scanProducts(rows)
}

// SearchProducts búsqueda insensible a mayúsculas y acentos. La consulta
// se pliega en Go y casa contra search_text, una columna generada ya
// normalizada (ver migración), así no dependemos de unaccent() en runtime.
func (r *ProductRepo) SearchProducts(ctx context.Context, s *entity.Session, query string) ([]*entity.Product, error) {
	folded := "%" + normalize.Fold(query) + "%"
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE search_text LIKE $1 ORDER BY category, name`, folded)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return scanProducts(rows)
}
