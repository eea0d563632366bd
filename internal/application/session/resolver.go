// Package session resuelve la identidad de autenticación en una sesión de
// actor tipada (rol, tenant, cliente vinculado).
package session

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/logger"
)

// Resolver convierte (authID, email) en una Session.
//
// Algoritmo: búsqueda por la clave primaria del proveedor de auth; si no
// hay actor, fallback por email (cubre drift entre el proveedor y la tabla
// de actores, p. ej. fixtures resembrados). El fallback se marca en la
// sesión y se loguea en warn: es un síntoma de integridad a vigilar, no
// algo a reparar en silencio. No se hace auto-reparación del AuthID.
//
// La frontera degrada siempre a "sin sesión": un fallo de backend durante
// la resolución se loguea y sale como ErrUnauthorized (autenticado pero no
// autorizado), nunca como pánico ni como error crudo de infraestructura.
type Resolver struct {
	actors repository.ActorRepository
	log    *logger.Logger

	// tenantOverride fuerza el tenant de toda sesión resuelta. Se fija en
	// despliegues no productivos para que su tráfico jamás vea ni escriba
	// filas del tenant de producción.
	tenantOverride string

	// Una resolución en vuelo por credencial: el resolver no se reintenta
	// solo y dos sign-in simultáneos del mismo principal comparten lookup.
	group singleflight.Group
}

// NewResolver construye el resolver. tenantOverride vacío desactiva el
// pin de tenant.
func NewResolver(actors repository.ActorRepository, log *logger.Logger, tenantOverride string) *Resolver {
	return &Resolver{actors: actors, log: log, tenantOverride: tenantOverride}
}

// Resolve resuelve la sesión del principal autenticado.
func (r *Resolver) Resolve(ctx context.Context, authID, email string) (*entity.Session, error) {
	v, err, _ := r.group.Do(authID, func() (interface{}, error) {
		return r.resolve(ctx, authID, email)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.Session), nil
}

func (r *Resolver) resolve(ctx context.Context, authID, email string) (*entity.Session, error) {
	actor, err := r.actors.FindByAuthID(ctx, authID)
	if err != nil {
		r.log.Warn().Err(err).Str("auth_id", authID).Msg("resolución de sesión: fallo de backend en búsqueda por auth_id")
		return nil, domain.ErrUnauthorized
	}

	resolvedByEmail := false
	if actor == nil && email != "" {
		actor, err = r.actors.FindByEmail(ctx, email)
		if err != nil {
			r.log.Warn().Err(err).Str("email", email).Msg("resolución de sesión: fallo de backend en fallback por email")
			return nil, domain.ErrUnauthorized
		}
		if actor != nil {
			resolvedByEmail = true
			r.log.Warn().
				Str("auth_id", authID).
				Str("actor_id", actor.ID).
				Msg("sesión resuelta por fallback de email: auth_id desalineado con la tabla de actores")
		}
	}
	if actor == nil {
		// Autenticado pero sin perfil de actor: distinto de "no autenticado".
		return nil, domain.ErrUnauthorized
	}
	if actor.Status != "" && actor.Status != "active" {
		return nil, domain.ErrForbidden
	}

	tenantID := actor.TenantID
	if r.tenantOverride != "" {
		tenantID = r.tenantOverride
	}
	return &entity.Session{
		ActorID:         actor.ID,
		Role:            actor.Role,
		TenantID:        tenantID,
		Name:            actor.Name,
		Email:           actor.Email,
		CustomerID:      actor.CustomerID,
		ResolvedByEmail: resolvedByEmail,
	}, nil
}
