package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo de registro en la tabla invoices.
const (
	TipoFactura     = "factura"
	TipoNotaCredito = "nota_credito"
)

// Estados de mercancía (ciclo de pago de la factura).
const (
	EstadoMercanciaPendiente = "pendiente"
	EstadoMercanciaPagada    = "pagada"
)

// Estados de nota crédito. Solo tienen significado cuando el registro es (o
// pasa a ser) una nota crédito: pendiente de aplicar, aplicada contra una
// factura original, o anulada (residual en cero).
const (
	EstadoNotaCreditoPendiente = "pendiente"
	EstadoNotaCreditoAplicada  = "aplicada"
	EstadoNotaCreditoAnulada   = "anulada"
)

// MetodoPagoPartido es el centinela que queda en metodo_pago cuando el pago
// se distribuye en varios canales (las líneas van en split_payment_lines).
const MetodoPagoPartido = "Pago Partido"

// Tipos de descuento antes de IVA.
const (
	DescuentoPorcentaje = "porcentaje"
	DescuentoValorFijo  = "valor_fijo"
)

// DescuentoAntesIVA es un descuento comercial aplicado sobre la base antes
// de impuestos: porcentaje de la base o valor fijo en pesos.
type DescuentoAntesIVA struct {
	Concepto string          `json:"concepto"`
	Valor    decimal.Decimal `json:"valor"`
	Tipo     string          `json:"tipo"` // porcentaje | valor_fijo
}

// Invoice representa una factura de proveedor (o una nota crédito, según Tipo).
//
// MontoRetencion es el PORCENTAJE de retención, no un monto; el nombre viene
// del esquema histórico y se conserva para no romper la columna.
// ValorRealAPagar es una caché del último valor calculado/liquidado: siempre
// re-derivable con el motor de liquidación, nunca fuente de verdad.
// Notas guarda el ledger de ajustes como documento JSON (ver settlement.Ledger).
type Invoice struct {
	ID                   string
	NumeroFactura        string
	ProveedorNIT         string
	ProveedorNombre      string
	Tipo                 string // factura | nota_credito
	Fecha                time.Time
	TotalAPagar          decimal.Decimal // bruto, IVA incluido; residual tras notas crédito
	FacturaIVA           decimal.Decimal
	FacturaIVAPorcentaje decimal.Decimal
	TotalSinIVA          decimal.NullDecimal // puede faltar; derivable: TotalAPagar - FacturaIVA
	TieneRetencion       bool
	MontoRetencion       decimal.Decimal // porcentaje de retención
	PorcentajeProntoPago decimal.Decimal
	UsoProntoPago        bool // se fija al liquidar
	DescuentosAntesIVA   []DescuentoAntesIVA
	ValorRealAPagar      decimal.NullDecimal
	EstadoMercancia      string
	EstadoNotaCredito    string
	MetodoPago           string
	FechaPago            *time.Time
	FacturaOrigenID      string // para notas crédito aplicadas: factura original
	Notas                string // ledger de ajustes (JSON)
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Pagada indica si la factura ya fue liquidada.
func (i *Invoice) Pagada() bool {
	return i.EstadoMercancia == EstadoMercanciaPagada
}
