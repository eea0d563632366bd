package fixture

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.ActorRepository = (*ActorRepo)(nil)

// ActorRepo actores fixture para resolución de sesión y login demo.
type ActorRepo struct {
	st *Store
}

// NewActorRepository construye el repositorio fixture de actores.
func NewActorRepository(st *Store) *ActorRepo {
	return &ActorRepo{st: st}
}

// FindByAuthID busca por la clave del proveedor de auth. (nil, nil) si no hay.
func (r *ActorRepo) FindByAuthID(ctx context.Context, authID string) (*entity.Actor, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, a := range r.st.actors {
		if a.AuthID == authID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// FindByEmail búsqueda de respaldo por email. (nil, nil) si no hay.
func (r *ActorRepo) FindByEmail(ctx context.Context, email string) (*entity.Actor, error) {
	if err := r.st.simulate(ctx); err != nil {
		return nil, err
	}
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, a := range r.st.actors {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}
