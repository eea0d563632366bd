package repository

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo de cobre. El catálogo es
// global (sin tenant), pero todo método recibe la sesión igualmente: el
// scoping por sesión es uniforme en todos los puertos y no hay sesión
// global ambiente.
type ProductRepository interface {
	GetProducts(ctx context.Context, s *entity.Session) ([]*entity.Product, error)
	GetCategories(ctx context.Context, s *entity.Session) ([]string, error)
	GetProductsByCategory(ctx context.Context, s *entity.Session, category string) ([]*entity.Product, error)
	// SearchProducts búsqueda insensible a mayúsculas y acentos.
	SearchProducts(ctx context.Context, s *entity.Session, query string) ([]*entity.Product, error)
}
