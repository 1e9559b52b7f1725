package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/application/settlement"
)

// PagoHandler maneja la liquidación de facturas.
type PagoHandler struct {
	uc *settlement.PagoUseCase
}

// NewPagoHandler construye el handler de pagos.
func NewPagoHandler(uc *settlement.PagoUseCase) *PagoHandler {
	return &PagoHandler{uc: uc}
}

// ValidarPartido godoc
// @Summary      Validar una distribución de pago partido (sin efectos)
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidarPagoPartidoRequest  true  "objetivo y líneas"
// @Success      200   {object}  map[string]bool
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos/validar-partido [post]
func (h *PagoHandler) ValidarPartido(c *fiber.Ctx) error {
	var in dto.ValidarPagoPartidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ValidarPagoPartido(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"valido": true})
}

// Pagar godoc
// @Summary      Liquidar una factura (un método o pago partido)
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PagarRequest  true  "liquidación"
// @Success      200   {object}  dto.PagoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pagos [post]
func (h *PagoHandler) Pagar(c *fiber.Ctx) error {
	var in dto.PagarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Pagar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PagarLote godoc
// @Summary      Liquidar un lote de facturas (cada una independiente)
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PagarLoteRequest  true  "lote"
// @Success      200   {object}  dto.PagoLoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pagos/lote [post]
func (h *PagoHandler) PagarLote(c *fiber.Ctx) error {
	var in dto.PagarLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PagarLote(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
