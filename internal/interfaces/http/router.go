package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pagos-api/internal/application/auth"
	"github.com/jhoicas/pagos-api/internal/application/invoices"
	"github.com/jhoicas/pagos-api/internal/application/settlement"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FacturaUC     *invoices.FacturaUseCase
	NotaCreditoUC *settlement.NotaCreditoUseCase
	SaldoUC       *settlement.SaldoFavorUseCase
	PagoUC        *settlement.PagoUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Facturas: consulta para todos los roles, alta para tesorería
	facturas := protected.Group("/facturas")
	facturaHandler := NewFacturaHandler(deps.FacturaUC)
	facturas.Get("/", facturaHandler.List)
	facturas.Get("/:id", facturaHandler.GetByID)
	facturas.Get("/:id/valor-real", facturaHandler.ValorReal)
	facturas.Post("/", RequireRole(entity.RoleAdmin, entity.RoleTesorero, entity.RoleAuxiliar), facturaHandler.Create)
	facturas.Post("/ingestar-xml", RequireRole(entity.RoleAdmin, entity.RoleTesorero, entity.RoleAuxiliar), facturaHandler.IngestXML)

	// Notas crédito: aplicar muta totales, solo tesorería
	notasCredito := protected.Group("/notas-credito", RequireRole(entity.RoleAdmin, entity.RoleTesorero))
	notaCreditoHandler := NewNotaCreditoHandler(deps.NotaCreditoUC)
	notasCredito.Post("/:id/aplicar", notaCreditoHandler.Aplicar)

	// Saldos a favor
	saldos := protected.Group("/saldos")
	saldoHandler := NewSaldoHandler(deps.SaldoUC)
	saldos.Get("/", saldoHandler.ListDisponibles)
	saldos.Post("/", RequireRole(entity.RoleAdmin, entity.RoleTesorero), saldoHandler.Create)
	saldos.Post("/:id/aplicar", RequireRole(entity.RoleAdmin, entity.RoleTesorero), saldoHandler.Aplicar)
	saldos.Post("/:id/aplicar-lote", RequireRole(entity.RoleAdmin, entity.RoleTesorero), saldoHandler.AplicarLote)
	saldos.Post("/:id/anular", RequireRole(entity.RoleAdmin), saldoHandler.Anular)

	// Pagos: liquidación solo tesorería; la validación de pago partido es
	// lectura pura y queda abierta a cualquier usuario autenticado
	pagos := protected.Group("/pagos")
	pagoHandler := NewPagoHandler(deps.PagoUC)
	pagos.Post("/validar-partido", pagoHandler.ValidarPartido)
	pagos.Post("/", RequireRole(entity.RoleAdmin, entity.RoleTesorero), pagoHandler.Pagar)
	pagos.Post("/lote", RequireRole(entity.RoleAdmin, entity.RoleTesorero), pagoHandler.PagarLote)
}
