package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Villegascvrr/entalpiamvp-sub000/internal/application/repofactory"
	appsession "github.com/Villegascvrr/entalpiamvp-sub000/internal/application/session"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/infrastructure/fixture"
	"github.com/Villegascvrr/entalpiamvp-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Villegascvrr/entalpiamvp-sub000/internal/interfaces/http"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/config"
	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("mode", cfg.App.Mode).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Fixtures: backend del modo demo y fallback de resiliencia del modo
	// en red. Latencia pequeña para que la demo se sienta como un backend.
	store := fixture.NewStore(25 * time.Millisecond)
	fixtures := &repofactory.Repositories{
		Products:     fixture.NewProductRepository(store),
		Orders:       fixture.NewOrderRepository(store),
		Customers:    fixture.NewCustomerRepository(store),
		MarketPrices: fixture.NewMarketPriceRepository(store),
		Actors:       fixture.NewActorRepository(store),
	}

	// Fuera del modo demo el cliente PostgreSQL se construye en diferido:
	// el factory devuelve proxies que esperan esta inicialización.
	connect := func(ctx context.Context) (*repofactory.Repositories, error) {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &repofactory.Repositories{
			Products:     postgres.NewProductRepository(pool),
			Orders:       postgres.NewOrderRepository(pool),
			Customers:    postgres.NewCustomerRepository(pool),
			MarketPrices: postgres.NewMarketPriceRepository(pool),
			Actors:       postgres.NewActorRepository(pool),
		}, nil
	}
	repos := repofactory.New(ctx, cfg.App.Mode, log, fixtures, connect)

	resolver := appsession.NewResolver(repos.Actors, log, cfg.App.PinnedTenantID)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Documentación de la API: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./api/openapi.json",
		Path:     "docs",
		Title:    "Entalpia Pedidos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "mode": cfg.App.Mode})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Repos:     repos,
		Resolver:  resolver,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		JWTExpMin: cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
