package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/application/settlement"
)

// NotaCreditoHandler maneja la aplicación de notas crédito.
type NotaCreditoHandler struct {
	uc *settlement.NotaCreditoUseCase
}

// NewNotaCreditoHandler construye el handler de notas crédito.
func NewNotaCreditoHandler(uc *settlement.NotaCreditoUseCase) *NotaCreditoHandler {
	return &NotaCreditoHandler{uc: uc}
}

type aplicarNotaCreditoRequest struct {
	FacturaID string `json:"factura_id"`
}

// Aplicar godoc
// @Summary      Aplicar nota crédito contra la factura original
// @Tags         notas-credito
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota crédito"
// @Param        body  body  aplicarNotaCreditoRequest  true  "factura original"
// @Success      200   {object}  dto.AplicarNotaCreditoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/notas-credito/{id}/aplicar [post]
func (h *NotaCreditoHandler) Aplicar(c *fiber.Ctx) error {
	var in aplicarNotaCreditoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Aplicar(c.Context(), c.Params("id"), in.FacturaID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
