package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PagoDetalle es una línea de pago de una factura liquidada: un canal y el
// monto pagado por ese canal. Una factura pagada tiene una o más líneas cuya
// suma es su valor_real_a_pagar final.
type PagoDetalle struct {
	ID        string
	FacturaID string
	MedioPago string
	Monto     decimal.Decimal
	Fecha     time.Time
}
