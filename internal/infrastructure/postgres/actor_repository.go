package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
)

var _ repository.ActorRepository = (*ActorRepo)(nil)

// ActorRepo actores sobre PostgreSQL. Sin sesión: se consulta durante la
// resolución de identidad, antes de que exista una.
type ActorRepo struct {
	q Querier
}

// NewActorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActorRepository(q Querier) *ActorRepo {
	return &ActorRepo{q: q}
}

const actorColumns = `id, auth_id, tenant_id, email, password_hash, name, role, customer_id, status, created_at, updated_at`

func (r *ActorRepo) findOne(ctx context.Context, query string, arg any) (*entity.Actor, error) {
	var a entity.Actor
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.AuthID, &a.TenantID, &a.Email, &a.PasswordHash, &a.Name,
		&a.Role, &a.CustomerID, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return &a, nil
}

// FindByAuthID busca por la clave del proveedor de auth. (nil, nil) si no hay.
func (r *ActorRepo) FindByAuthID(ctx context.Context, authID string) (*entity.Actor, error) {
	return r.findOne(ctx, `SELECT `+actorColumns+` FROM actors WHERE auth_id = $1`, authID)
}

// FindByEmail búsqueda de respaldo por email. (nil, nil) si no hay.
func (r *ActorRepo) FindByEmail(ctx context.Context, email string) (*entity.Actor, error) {
	return r.findOne(ctx, `SELECT `+actorColumns+` FROM actors WHERE email = $1`, email)
}
