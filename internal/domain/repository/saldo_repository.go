package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pagos-api/internal/domain/entity"
)

// SaldoFavorRepository define el puerto de persistencia para saldos a favor
// y sus aplicaciones.
type SaldoFavorRepository interface {
	Create(s *entity.SaldoFavor) error
	GetByID(id string) (*entity.SaldoFavor, error)
	// ListDisponibles devuelve los saldos activos (disponible > 0) del
	// proveedor; refleja de inmediato cualquier aplicación previa
	// (read-after-write).
	ListDisponibles(proveedorNIT string) ([]*entity.SaldoFavor, error)
	// ApplyBalanceFavor descuenta monto del saldo disponible e inserta la
	// SaldoAplicacion en una sola operación atómica contra el almacén: el
	// decremento está guardado por saldo_disponible >= monto, de modo que dos
	// aplicaciones concurrentes del mismo saldo se serializan en la fila y
	// nunca dejan el disponible negativo. Si el disponible llega a cero el
	// saldo pasa a estado agotado. Devuelve el saldo actualizado.
	ApplyBalanceFavor(saldoID, facturaID string, monto decimal.Decimal) (*entity.SaldoFavor, error)
	// Anular marca un saldo activo como anulado (acción explícita, terminal).
	Anular(id string) error
	ListAplicaciones(saldoID string) ([]*entity.SaldoAplicacion, error)
	ListAplicacionesByFactura(facturaID string) ([]*entity.SaldoAplicacion, error)
}
