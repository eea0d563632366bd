package entity

import "time"

// Roles de actor. Los tres primeros son roles internos del distribuidor;
// customer es el comprador de un cliente.
const (
	RoleCustomer   = "customer"
	RoleCommercial = "commercial"
	RoleLogistics  = "logistics"
	RoleAdmin      = "admin"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleCustomer, RoleCommercial, RoleLogistics, RoleAdmin:
		return true
	}
	return false
}

// Session identidad resuelta de un actor autenticado. Es el contrato de
// autorización de todos los repositorios: tenant, rol y cliente vinculado
// viajan juntos en cada operación.
type Session struct {
	ActorID    string
	Role       string
	TenantID   string
	Name       string
	Email      string
	CustomerID string // solo para rol customer

	// ResolvedByEmail marca que la sesión se resolvió por el fallback de
	// email (auth_id desalineado con la tabla de actores).
	ResolvedByEmail bool
}

// CanValidateOrders indica si el rol puede validar pedidos.
func (s *Session) CanValidateOrders() bool {
	return s.Role == RoleAdmin || s.Role == RoleCommercial
}

// IsStaff indica si el actor es personal interno del distribuidor.
func (s *Session) IsStaff() bool {
	return s.Role != RoleCustomer
}

// Actor fila de la tabla de actores: el perfil autorizable detrás de una
// identidad del proveedor de auth. AuthID es la clave que emite el
// proveedor; puede desalinearse de la tabla (drift) y entonces el
// resolver cae al email.
type Actor struct {
	ID           string
	AuthID       string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CustomerID   string // vínculo para rol customer
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
