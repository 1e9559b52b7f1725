// Package settlement contiene el motor de liquidación financiera de facturas
// de proveedor: cálculo del valor real a pagar, ledger de ajustes por notas
// crédito y validación de pagos partidos. Toda la aritmética monetaria usa
// decimal; ninguna función de este paquete tiene efectos secundarios.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pagos-api/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// BaseSinIVA devuelve la base antes de impuestos de la factura:
// total_sin_iva si está registrado, si no total_a_pagar - factura_iva.
func BaseSinIVA(inv *entity.Invoice) decimal.Decimal {
	if inv.TotalSinIVA.Valid {
		return inv.TotalSinIVA.Decimal
	}
	return inv.TotalAPagar.Sub(inv.FacturaIVA)
}

// TotalDescuentos suma los descuentos antes de IVA sobre la base dada:
// los de tipo porcentaje se calculan como base*valor/100, los de valor fijo
// se suman tal cual, en el orden registrado.
func TotalDescuentos(base decimal.Decimal, descuentos []entity.DescuentoAntesIVA) decimal.Decimal {
	total := decimal.Zero
	for _, d := range descuentos {
		if d.Tipo == entity.DescuentoPorcentaje {
			total = total.Add(base.Mul(d.Valor).Div(cien))
		} else {
			total = total.Add(d.Valor)
		}
	}
	return total
}

// Retencion aplica la fórmula de retención en la fuente sobre la base dada.
// porcentaje es el valor de monto_retencion (un porcentaje, pese al nombre).
func Retencion(base decimal.Decimal, tieneRetencion bool, porcentaje decimal.Decimal) decimal.Decimal {
	if !tieneRetencion {
		return decimal.Zero
	}
	return base.Mul(porcentaje).Div(cien)
}

// ComputeValorReal calcula el valor neto a pagar de una factura a partir de
// sus campos vigentes. Es la ÚNICA fórmula de liquidación del sistema; ningún
// caller debe re-derivar estos montos por su cuenta.
//
// Orden del cálculo:
//  1. base = total_sin_iva ?? (total_a_pagar - factura_iva)
//  2. descuentos antes de IVA (porcentaje sobre la base, o valor fijo)
//  3. baseAjustada = max(0, base - descuentos)
//  4. retención sobre la base ajustada
//  5. pronto pago sobre la base SIN descontar — comportamiento histórico que
//     se conserva para reproducir las cifras ya liquidadas
//  6. valorReal = max(0, (total_a_pagar - descuentos) - retención - prontoPago)
//
// aplicarProntoPago es decisión del pagador al momento de liquidar; el
// porcentaje registrado por sí solo no implica el descuento. El resultado es
// siempre >= 0 e idempotente para los mismos insumos, esté o no la factura
// parcialmente liquidada.
func ComputeValorReal(inv *entity.Invoice, aplicarProntoPago bool) decimal.Decimal {
	base := BaseSinIVA(inv)
	descuentos := TotalDescuentos(base, inv.DescuentosAntesIVA)

	baseAjustada := base.Sub(descuentos)
	if baseAjustada.IsNegative() {
		baseAjustada = decimal.Zero
	}

	retencion := Retencion(baseAjustada, inv.TieneRetencion, inv.MontoRetencion)

	prontoPago := decimal.Zero
	if aplicarProntoPago && inv.PorcentajeProntoPago.IsPositive() {
		prontoPago = base.Mul(inv.PorcentajeProntoPago).Div(cien)
	}

	brutoConDescuentos := inv.TotalAPagar.Sub(descuentos)
	valorReal := brutoConDescuentos.Sub(retencion).Sub(prontoPago)
	if valorReal.IsNegative() {
		return decimal.Zero
	}
	return valorReal
}
