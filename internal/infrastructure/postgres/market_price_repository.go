package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.MarketPriceRepository = (*MarketPriceRepo)(nil)

// MarketPriceRepo cotizaciones del cobre sobre PostgreSQL. Globales, sin
// filtro de tenant, igual que el catálogo.
type MarketPriceRepo struct {
	q Querier
}

// NewMarketPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMarketPriceRepository(q Querier) *MarketPriceRepo {
	return &MarketPriceRepo{q: q}
}

const marketPriceColumns = `id, metal, price_per_kg, currency, source, effective_at`

// GetLatestPrice cotización más reciente.
func (r *MarketPriceRepo) GetLatestPrice(ctx context.Context, s *entity.Session) (*entity.MarketPrice, error) {
	var p entity.MarketPrice
	err := r.q.QueryRow(ctx,
		`SELECT `+marketPriceColumns+` FROM market_prices ORDER BY effective_at DESC LIMIT 1`,
	).Scan(&p.ID, &p.Metal, &p.PricePerKg, &p.Currency, &p.Source, &p.EffectiveAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get latest price: %w", err)
	}
	return &p, nil
}

// GetPriceHistory cotizaciones de los últimos days días, ascendente.
func (r *MarketPriceRepo) GetPriceHistory(ctx context.Context, s *entity.Session, days int) ([]*entity.MarketPrice, error) {
	if days < 1 {
		return nil, domain.ErrInvalidInput
	}
	since := time.Now().AddDate(0, 0, -days)
	rows, err := r.q.Query(ctx,
		`SELECT `+marketPriceColumns+` FROM market_prices WHERE effective_at >= $1 ORDER BY effective_at`, since)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var out []*entity.MarketPrice
	for rows.Next() {
		var p entity.MarketPrice
		if err := rows.Scan(&p.ID, &p.Metal, &p.PricePerKg, &p.Currency, &p.Source, &p.EffectiveAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
