package repository

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// MarketPriceRepository puerto de cotizaciones del cobre (global, como el
// catálogo).
type MarketPriceRepository interface {
	GetLatestPrice(ctx context.Context, s *entity.Session) (*entity.MarketPrice, error)
	GetPriceHistory(ctx context.Context, s *entity.Session, days int) ([]*entity.MarketPrice, error)
}
