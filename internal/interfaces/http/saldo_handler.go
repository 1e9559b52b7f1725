package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/application/settlement"
)

// SaldoHandler maneja saldos a favor de proveedores.
type SaldoHandler struct {
	uc *settlement.SaldoFavorUseCase
}

// NewSaldoHandler construye el handler de saldos.
func NewSaldoHandler(uc *settlement.SaldoFavorUseCase) *SaldoHandler {
	return &SaldoHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar saldo a favor
// @Tags         saldos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearSaldoRequest  true  "saldo"
// @Success      201   {object}  dto.SaldoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/saldos [post]
func (h *SaldoHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearSaldoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDisponibles godoc
// @Summary      Listar saldos disponibles de un proveedor
// @Tags         saldos
// @Produce      json
// @Param        proveedor_nit  query  string  true  "NIT del proveedor"
// @Success      200  {array}  dto.SaldoResponse
// @Router       /api/saldos [get]
func (h *SaldoHandler) ListDisponibles(c *fiber.Ctx) error {
	out, err := h.uc.ListarDisponibles(c.Context(), c.Query("proveedor_nit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Aplicar godoc
// @Summary      Aplicar saldo contra una factura
// @Tags         saldos
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del saldo"
// @Param        body  body  dto.AplicarSaldoRequest  true  "factura y monto"
// @Success      200   {object}  dto.AplicarSaldoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/saldos/{id}/aplicar [post]
func (h *SaldoHandler) Aplicar(c *fiber.Ctx) error {
	var in dto.AplicarSaldoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Aplicar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AplicarLote godoc
// @Summary      Aplicar saldo repartido en partes iguales entre varias facturas
// @Tags         saldos
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del saldo"
// @Param        body  body  dto.AplicarSaldoLoteRequest  true  "facturas y monto total"
// @Success      200   {object}  dto.AplicarSaldoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/saldos/{id}/aplicar-lote [post]
func (h *SaldoHandler) AplicarLote(c *fiber.Ctx) error {
	var in dto.AplicarSaldoLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AplicarLote(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Anular godoc
// @Summary      Anular un saldo activo (terminal)
// @Tags         saldos
// @Produce      json
// @Param        id  path  string  true  "ID del saldo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/saldos/{id}/anular [post]
func (h *SaldoHandler) Anular(c *fiber.Ctx) error {
	if err := h.uc.Anular(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
