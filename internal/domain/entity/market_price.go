package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketPrice cotización del cobre (referencia LME). Global como el
// catálogo: no se filtra por tenant.
type MarketPrice struct {
	ID          string
	Metal       string          // "copper"
	PricePerKg  decimal.Decimal
	Currency    string // EUR, USD
	Source      string // lme, fixture
	EffectiveAt time.Time
}
