// Package fixture implementa los puertos de repositorio sobre un almacén
// en memoria determinista, usado en demos y tests. Simula la latencia del
// backend y muta en las escrituras. El almacén vive lo que el proceso: no
// hay punto de reset, limitación asumida porque existe para demos.
package fixture

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
)

// DemoTenantID tenant fijo que usan los datos sembrados.
const DemoTenantID = "tenant-demo"

// Store almacén en memoria compartido por los repositorios fixture.
// El mutex garantiza que cada escritura "ocurre por completo antes de
// retornar" también bajo goroutines concurrentes.
type Store struct {
	mu      sync.Mutex
	latency time.Duration
	rnd     *rand.Rand
	now     func() time.Time

	products  []*entity.Product
	customers []*entity.Customer
	orders    map[string]*entity.Order // por referencia
	actors    []*entity.Actor
	prices    []*entity.MarketPrice
}

// NewStore crea el almacén sembrado. La semilla fija hace los datos (y las
// referencias de pedido generadas) reproducibles entre ejecuciones.
func NewStore(latency time.Duration) *Store {
	s := &Store{
		latency: latency,
		rnd:     rand.New(rand.NewSource(42)),
		now:     time.Now,
		orders:  make(map[string]*entity.Order),
	}
	s.seed()
	return s
}

// simulate imita la latencia de un backend en red respetando el contexto.
func (s *Store) simulate(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
