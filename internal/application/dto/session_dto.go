package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse sesión resuelta del actor autenticado.
type SessionResponse struct {
	ActorID         string `json:"actor_id"`
	Role            string `json:"role"`
	TenantID        string `json:"tenant_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	CustomerID      string `json:"customer_id,omitempty"`
	ResolvedByEmail bool   `json:"resolved_by_email,omitempty"`
}

// LoginResponse token emitido más la sesión resuelta.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}
