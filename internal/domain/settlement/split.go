package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pagos-api/internal/domain"
)

// LineaPago es un par (canal, monto) de un pago partido, antes de persistirse
// como PagoDetalle.
type LineaPago struct {
	MedioPago string
	Monto     decimal.Decimal
}

// toleranciaPesos: los montos históricos se guardaron en pesos enteros con
// redondeos intermedios, así que la suma de un pago partido puede diferir del
// objetivo por fracciones; se acepta una diferencia estrictamente menor a 1.
var toleranciaPesos = decimal.NewFromInt(1)

// ValidarPagoPartido valida la distribución de un pago entre varios canales
// contra el monto objetivo (valor real menos saldos ya aplicados).
//
// Es válido si y solo si: toda línea tiene canal no vacío y monto > 0, y
// |Σ montos - objetivo| < 1 peso. Cualquier combinación inválida se rechaza
// aquí, antes de tocar la persistencia.
func ValidarPagoPartido(objetivo decimal.Decimal, lineas []LineaPago) error {
	if len(lineas) == 0 {
		return domain.ErrPagoPartidoInvalido
	}
	suma := decimal.Zero
	for _, l := range lineas {
		if l.MedioPago == "" || !l.Monto.IsPositive() {
			return domain.ErrPagoPartidoInvalido
		}
		suma = suma.Add(l.Monto)
	}
	if suma.Sub(objetivo).Abs().GreaterThanOrEqual(toleranciaPesos) {
		return domain.ErrSumaPagoNoCoincide
	}
	return nil
}
