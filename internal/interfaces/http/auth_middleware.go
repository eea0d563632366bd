package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/dto"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/session"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/jwt"
)

// Locals key para la sesión resuelta en Fiber.
const LocalSession = "session"

// AuthMiddleware valida el Bearer Token JWT y resuelve la sesión del actor
// con el resolver. Distingue las dos fronteras de error: token ausente o
// inválido es 401 (no autenticado); token válido sin actor resoluble es
// 403 (autenticado pero no autorizado, "contacta a tu administrador").
func AuthMiddleware(jwtSecret string, resolver *session.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		authID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		s, err := resolver.Resolve(c.UserContext(), authID, email)
		if err != nil || s == nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_PROFILE", Message: "actor no autorizado: contacta a tu administrador"})
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth).
func GetSession(c *fiber.Ctx) *entity.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*entity.Session)
	return s
}

// RequireRole autoriza solo a los roles indicados. Debe ir tras AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		for _, r := range roles {
			if s.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}
