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

	"github.com/jhoicas/pagos-api/internal/application/auth"
	"github.com/jhoicas/pagos-api/internal/application/invoices"
	"github.com/jhoicas/pagos-api/internal/application/settlement"
	"github.com/jhoicas/pagos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pagos-api/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/pagos-api/internal/interfaces/http"
	"github.com/jhoicas/pagos-api/pkg/config"
	"github.com/jhoicas/pagos-api/pkg/logger"
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
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	saldoRepo := postgres.NewSaldoFavorRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	facturaUC := invoices.NewFacturaUseCase(invoiceRepo, saldoRepo, ubl.NewParser())
	notaCreditoUC := settlement.NewNotaCreditoUseCase(txRunner, invoiceRepo)
	saldoUC := settlement.NewSaldoFavorUseCase(txRunner, saldoRepo, invoiceRepo)
	pagoUC := settlement.NewPagoUseCase(txRunner, invoiceRepo, saldoRepo, pagoRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pagos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		FacturaUC:     facturaUC,
		NotaCreditoUC: notaCreditoUC,
		SaldoUC:       saldoUC,
		PagoUC:        pagoUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
