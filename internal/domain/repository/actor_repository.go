package repository

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// ActorRepository puerto de actores. Se usa antes de que exista sesión
// (resolución de identidad y login), por eso no recibe Session.
// "No encontrado" se devuelve como (nil, nil), igual que en el resto de
// lecturas por clave.
type ActorRepository interface {
	FindByAuthID(ctx context.Context, authID string) (*entity.Actor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Actor, error)
}
