package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")

	// Motor de liquidación.
	ErrMontoInvalido       = errors.New("monto inválido")
	ErrSaldoInsuficiente   = errors.New("saldo a favor insuficiente")
	ErrSaldoNoDisponible   = errors.New("el saldo a favor no está activo")
	ErrMontoExcedeFactura  = errors.New("el monto excede el valor pendiente de la factura")
	ErrPagoPartidoInvalido = errors.New("las líneas del pago partido son inválidas")
	ErrSumaPagoNoCoincide  = errors.New("la suma de los pagos no coincide con el valor a pagar")
	ErrNotaCreditoInvalida = errors.New("nota crédito inválida para la factura")
	ErrNotaCreditoAplicada = errors.New("la nota crédito ya fue aplicada")
	ErrFacturaYaPagada     = errors.New("la factura ya está pagada")
)
