// Package repofactory selecciona la implementación de los puertos según el
// modo de ejecución, sin que los llamantes ramifiquen jamás por modo.
//
// En modo demo devuelve los fixtures directamente: el cliente de red no se
// construye nunca. En los demás modos devuelve proxies con forma de
// contrato que esperan una señal de inicialización única antes de delegar
// en el cliente real; si esa inicialización falla, todas las llamadas caen
// de forma permanente en los fixtures en vez de dejar la aplicación
// inutilizable. Las llamadas emitidas antes de la señal esperan en cola,
// no compiten ni se pierden.
package repofactory

import (
	"context"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/entity"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/domain/repository"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/logger"
)

// Modos de ejecución reconocidos.
const (
	ModeDemo       = "demo"
	ModeProduction = "production"
)

// Repositories agrupa los cinco puertos del núcleo. Se construye en el
// arranque y se pasa como dependencia explícita; no hay singleton de
// paquete.
type Repositories struct {
	Products     repository.ProductRepository
	Orders       repository.OrderRepository
	Customers    repository.CustomerRepository
	MarketPrices repository.MarketPriceRepository
	Actors       repository.ActorRepository
}

// Initializer construye el bundle en red (pool de conexiones incluido).
// Solo se invoca fuera del modo demo, y una única vez.
type Initializer func(ctx context.Context) (*Repositories, error)

// New devuelve el bundle para el modo dado. fixtures es a la vez la
// implementación del modo demo y el fallback de resiliencia del modo en
// red.
func New(ctx context.Context, mode string, log *logger.Logger, fixtures *Repositories, connect Initializer) *Repositories {
	if mode == ModeDemo {
		log.Info().Str("mode", mode).Msg("repositorios en modo demo (fixtures, sin cliente de red)")
		return fixtures
	}

	h := &handle{ready: make(chan struct{})}
	go func() {
		repos, err := connect(ctx)
		if err != nil {
			log.Error().Err(err).Msg("inicialización del backend en red fallida: todas las llamadas usarán fixtures")
			h.repos = fixtures
		} else {
			log.Info().Str("mode", mode).Msg("backend en red inicializado")
			h.repos = repos
		}
		close(h.ready)
	}()

	return &Repositories{
		Products:     &deferredProducts{h},
		Orders:       &deferredOrders{h},
		Customers:    &deferredCustomers{h},
		MarketPrices: &deferredMarketPrices{h},
		Actors:       &deferredActors{h},
	}
}

// handle futuro de preparación compartido por todos los proxies. repos se
// escribe exactamente una vez antes de cerrar ready.
type handle struct {
	ready chan struct{}
	repos *Repositories
}

// await bloquea hasta la señal de preparación (o hasta que el contexto
// del llamante muera) y devuelve el bundle a usar.
func (h *handle) await(ctx context.Context) (*Repositories, error) {
	select {
	case <-h.ready:
		return h.repos, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type deferredProducts struct{ h *handle }

func (d *deferredProducts) GetProducts(ctx context.Context, s *entity.Session) ([]*entity.Product, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Products.GetProducts(ctx, s)
}

func (d *deferredProducts) GetCategories(ctx context.Context, s *entity.Session) ([]string, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Products.GetCategories(ctx, s)
}

func (d *deferredProducts) GetProductsByCategory(ctx context.Context, s *entity.Session, category string) ([]*entity.Product, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Products.GetProductsByCategory(ctx, s, category)
}

func (d *deferredProducts) SearchProducts(ctx context.Context, s *entity.Session, query string) ([]*entity.Product, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Products.SearchProducts(ctx, s, query)
}

type deferredOrders struct{ h *handle }

func (d *deferredOrders) GetOrderByReference(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Orders.GetOrderByReference(ctx, s, reference)
}

func (d *deferredOrders) GetAdminOrders(ctx context.Context, s *entity.Session, limit, offset int) ([]*entity.Order, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Orders.GetAdminOrders(ctx, s, limit, offset)
}

func (d *deferredOrders) GetRecentOrders(ctx context.Context, s *entity.Session, limit int) ([]*entity.Order, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Orders.GetRecentOrders(ctx, s, limit)
}

func (d *deferredOrders) GetCustomerHistory(ctx context.Context, s *entity.Session, customerID string) ([]*entity.Order, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Orders.GetCustomerHistory(ctx, s, customerID)
}

func (d *deferredOrders) CreateOrder(ctx context.Context, s *entity.Session, draft *entity.OrderDraft) (*entity.Order, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Orders.CreateOrder(ctx, s, draft)
}

func (d *deferredOrders) ValidateOrder(ctx context.Context, s *entity.Session, reference string) (*entity.Order, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Orders.ValidateOrder(ctx, s, reference)
}

func (d *deferredOrders) UpdateOrderStatus(ctx context.Context, s *entity.Session, reference string, newStatus entity.OrderStatus) (*entity.Order, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Orders.UpdateOrderStatus(ctx, s, reference, newStatus)
}

type deferredCustomers struct{ h *handle }

func (d *deferredCustomers) GetCustomers(ctx context.Context, s *entity.Session) ([]*entity.Customer, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Customers.GetCustomers(ctx, s)
}

func (d *deferredCustomers) GetCustomerByID(ctx context.Context, s *entity.Session, id string) (*entity.Customer, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Customers.GetCustomerByID(ctx, s, id)
}

func (d *deferredCustomers) CreateCustomer(ctx context.Context, s *entity.Session, c *entity.Customer) (*entity.Customer, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Customers.CreateCustomer(ctx, s, c)
}

type deferredMarketPrices struct{ h *handle }

func (d *deferredMarketPrices) GetLatestPrice(ctx context.Context, s *entity.Session) (*entity.MarketPrice, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.MarketPrices.GetLatestPrice(ctx, s)
}

func (d *deferredMarketPrices) GetPriceHistory(ctx context.Context, s *entity.Session, days int) ([]*entity.MarketPrice, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.MarketPrices.GetPriceHistory(ctx, s, days)
}

type deferredActors struct{ h *handle }

func (d *deferredActors) FindByAuthID(ctx context.Context, authID string) (*entity.Actor, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Actors.FindByAuthID(ctx, authID)
}

func (d *deferredActors) FindByEmail(ctx context.Context, email string) (*entity.Actor, error) {
	r, err := d.h.await(ctx)
	if err != nil {
		return nil, err
	}
	return r.Actors.FindByEmail(ctx, email)
}
