package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/dto"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/session"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/jwt"
)

// AuthHandler login contra la tabla de actores y consulta de la sesión
// propia. El token emitido lleva solo la identidad (auth_id, email): rol y
// tenant los decide el resolver en cada petición.
type AuthHandler struct {
	actors   repository.ActorRepository
	resolver *session.Resolver
	secret   string
	issuer   string
	expMin   int
}

// NewAuthHandler construye el handler.
func NewAuthHandler(actors repository.ActorRepository, resolver *session.Resolver, secret, issuer string, expMin int) *AuthHandler {
	return &AuthHandler{actors: actors, resolver: resolver, secret: secret, issuer: issuer, expMin: expMin}
}

// Login verifica email/password, emite el JWT y devuelve la sesión resuelta.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	actor, err := h.actors.FindByEmail(c.UserContext(), in.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(in.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
	}
	token, err := jwt.Generate(h.secret, actor.AuthID, actor.Email, h.issuer, h.expMin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	s, err := h.resolver.Resolve(c.UserContext(), actor.AuthID, actor.Email)
	if err != nil || s == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_PROFILE", Message: "actor no autorizado: contacta a tu administrador"})
	}
	return c.JSON(dto.LoginResponse{
		Token: token,
		Session: dto.SessionResponse{
			ActorID: s.ActorID, Role: s.Role, TenantID: s.TenantID,
			Name: s.Name, Email: s.Email, CustomerID: s.CustomerID,
			ResolvedByEmail: s.ResolvedByEmail,
		},
	})
}

// Me devuelve la sesión del actor autenticado.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
	}
	return c.JSON(dto.SessionResponse{
		ActorID: s.ActorID, Role: s.Role, TenantID: s.TenantID,
		Name: s.Name, Email: s.Email, CustomerID: s.CustomerID,
		ResolvedByEmail: s.ResolvedByEmail,
	})
}
