package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/domain"
)

// errorStatus mapea errores de dominio a (status, código) HTTP. Los handlers
// comparten este mapa para que el mismo error siempre responda igual.
func errorStatus(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	case errors.Is(err, domain.ErrMontoInvalido):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "MONTO_INVALIDO", Message: "el monto debe ser positivo"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"}
	case errors.Is(err, domain.ErrSaldoInsuficiente):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SALDO_INSUFICIENTE", Message: "el saldo disponible no cubre el monto solicitado"}
	case errors.Is(err, domain.ErrSaldoNoDisponible):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SALDO_NO_DISPONIBLE", Message: "el saldo no está activo"}
	case errors.Is(err, domain.ErrMontoExcedeFactura):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "MONTO_EXCEDE_FACTURA", Message: "el monto excede el valor pendiente de la factura"}
	case errors.Is(err, domain.ErrPagoPartidoInvalido):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "PAGO_PARTIDO_INVALIDO", Message: "las líneas del pago partido son inválidas"}
	case errors.Is(err, domain.ErrSumaPagoNoCoincide):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SUMA_NO_COINCIDE", Message: "la suma de las líneas no coincide con el valor a pagar"}
	case errors.Is(err, domain.ErrNotaCreditoInvalida):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "NOTA_CREDITO_INVALIDA", Message: "la nota crédito no es aplicable a esta factura"}
	case errors.Is(err, domain.ErrNotaCreditoAplicada):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "NOTA_CREDITO_APLICADA", Message: "la nota crédito ya fue aplicada"}
	case errors.Is(err, domain.ErrFacturaYaPagada):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "FACTURA_YA_PAGADA", Message: "la factura ya está pagada"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de estado"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status, body := errorStatus(err)
	return c.Status(status).JSON(body)
}
