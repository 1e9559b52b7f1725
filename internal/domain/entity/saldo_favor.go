package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un saldo a favor.
const (
	SaldoActivo  = "activo"
	SaldoAgotado = "agotado"
	SaldoAnulado = "anulado"
)

// Motivos de origen de un saldo a favor.
const (
	MotivoSobrepago   = "sobrepago"
	MotivoNotaCredito = "nota_credito"
	MotivoManual      = "manual"
)

// SaldoFavor es un crédito del proveedor utilizable contra facturas futuras
// del mismo proveedor. Se crea una vez y se consume a lo largo de su vida:
// SaldoDisponible = MontoInicial - Σ aplicaciones, monótono no creciente,
// nunca negativo. activo → agotado cuando llega a cero; activo → anulado
// solo por acción explícita. Nunca resucita.
type SaldoFavor struct {
	ID              string
	ProveedorNIT    string
	ProveedorNombre string
	MontoInicial    decimal.Decimal
	SaldoDisponible decimal.Decimal
	Motivo          string // sobrepago | nota_credito | manual
	MedioPago       string // canal de pago que originó el saldo
	Estado          string // activo | agotado | anulado
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SaldoAplicacion registra el uso de una parte de un saldo contra una factura.
type SaldoAplicacion struct {
	ID        string
	SaldoID   string
	FacturaID string
	Monto     decimal.Decimal
	Fecha     time.Time
}
