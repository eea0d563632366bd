package entity

import "time"

// Customer ficha de cliente de un tenant (datos de facturación y contacto).
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Company   string
	TaxID     string // NIF/CIF
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
