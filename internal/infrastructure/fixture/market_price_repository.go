package fixture

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.MarketPriceRepository = (*MarketPriceRepo)(nil)

// MarketPriceRepo cotizaciones fixture (serie determinista sembrada).
type MarketPriceRepo struct {
	st *Store
}

// NewMarketPriceRepository construye el repositorio fixture de cotizaciones.
func NewMarketPriceRepository(st *Store) *MarketPriceRepo {
	return &MarketPriceRepo{st: st}
}

// GetLatestPrice cotización más reciente.
func (r *MarketPriceRepo) GetLatestPrice(ctx context.Context, s *entity.Session) (*entity.MarketPrice, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if len(r.st.prices) == 0 {
		return nil, domain.ErrNotFound
	}
	cp := *r.st.prices[len(r.st.prices)-1]
	return &cp, nil
}

// GetPriceHistory últimos days días de cotizaciones, ascendente.
func (r *MarketPriceRepo) GetPriceHistory(ctx context.Context, s *entity.Session, days int) ([]*entity.MarketPrice, error) {
	if days < 1 {
		return nil, domain.ErrInvalidInput
	}
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	from := len(r.st.prices) - days
	if from < 0 {
		from = 0
	}
	var out []*entity.MarketPrice
	for _, p := range r.st.prices[from:] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}
