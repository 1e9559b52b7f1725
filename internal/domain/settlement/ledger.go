package settlement

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pagos-api/internal/domain/entity"
)

// NotaCreditoRecord es un evento inmutable del ledger: una nota crédito
// aplicada contra la factura original. Una vez anexado nunca se muta ni se
// elimina; los totales vigentes se obtienen plegando la lista completa.
type NotaCreditoRecord struct {
	FacturaID         string          `json:"factura_id"`
	NumeroFactura     string          `json:"numero_factura"`
	ValorDescuento    decimal.Decimal `json:"valor_descuento"`
	DescuentoSinIVA   decimal.Decimal `json:"descuento_sin_iva"`
	IVADescuento      decimal.Decimal `json:"iva_descuento"`
	FechaAplicacion   time.Time       `json:"fecha_aplicacion"`
	RetencionReducida decimal.Decimal `json:"retencion_reducida"`
}

// Ledger es el documento de ajustes persistido en la columna notas de la
// factura original. El snapshot (*_original) se captura exactamente una vez,
// con la primera nota crédito, para que las aplicaciones sucesivas siempre
// plieguen contra el verdadero original y no contra un valor ya reducido.
type Ledger struct {
	TotalOriginal       decimal.Decimal     `json:"total_original"`
	IVAOriginal         decimal.Decimal     `json:"iva_original"`
	TotalSinIVAOriginal decimal.Decimal     `json:"total_sin_iva_original"`
	RetencionOriginal   decimal.Decimal     `json:"retencion_original"`
	RetencionPorcentaje decimal.Decimal     `json:"retencion_porcentaje"`
	RetencionActual     decimal.Decimal     `json:"retencion_actual"`
	ValorRealAPagar     decimal.Decimal     `json:"valor_real_a_pagar"`
	NotasCredito        []NotaCreditoRecord `json:"notas_credito"`
}

// ParseLedger decodifica el documento JSON de la columna notas. Un documento
// vacío o malformado degrada a ledger vacío: la historia ilegible se trata
// como "sin ajustes previos", nunca como error duro.
func ParseLedger(raw string) *Ledger {
	l := &Ledger{}
	if raw == "" {
		return l
	}
	if err := json.Unmarshal([]byte(raw), l); err != nil {
		return &Ledger{}
	}
	return l
}

// Encode serializa el ledger para persistirlo en la columna notas.
func (l *Ledger) Encode() (string, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// TieneSnapshot indica si ya se capturaron los valores originales.
func (l *Ledger) TieneSnapshot() bool {
	return len(l.NotasCredito) > 0 || l.TotalOriginal.IsPositive()
}

// Snapshot captura los valores originales de la factura tal como están AHORA.
// Debe llamarse solo antes de la primera nota crédito; llamadas posteriores
// sobre un ledger con snapshot son un error de programación y se ignoran.
func (l *Ledger) Snapshot(inv *entity.Invoice) {
	if l.TieneSnapshot() {
		return
	}
	base := BaseSinIVA(inv)
	l.TotalOriginal = inv.TotalAPagar
	l.IVAOriginal = inv.FacturaIVA
	l.TotalSinIVAOriginal = base
	l.RetencionPorcentaje = inv.MontoRetencion
	l.RetencionOriginal = Retencion(base, inv.TieneRetencion, inv.MontoRetencion)
}

// Append anexa un registro de nota crédito al ledger.
func (l *Ledger) Append(rec NotaCreditoRecord) {
	l.NotasCredito = append(l.NotasCredito, rec)
}

// FoldResult son los totales residuales de la factura original tras plegar
// todas las notas crédito del ledger contra el snapshot.
type FoldResult struct {
	NuevoSinIVA    decimal.Decimal
	NuevoIVA       decimal.Decimal
	NuevoTotal     decimal.Decimal
	NuevaRetencion decimal.Decimal
	NuevoValorReal decimal.Decimal
}

// Fold recomputa los totales residuales plegando la lista COMPLETA de notas
// crédito contra el snapshot. Es idempotente: plegar las mismas notas produce
// siempre el mismo resultado, sin deriva por recomputaciones repetidas.
func (l *Ledger) Fold(tieneRetencion bool) FoldResult {
	var sinIVADesc, ivaDesc decimal.Decimal
	for _, rec := range l.NotasCredito {
		sinIVADesc = sinIVADesc.Add(rec.DescuentoSinIVA)
		ivaDesc = ivaDesc.Add(rec.IVADescuento)
	}

	nuevoSinIVA := l.TotalSinIVAOriginal.Sub(sinIVADesc)
	if nuevoSinIVA.IsNegative() {
		nuevoSinIVA = decimal.Zero
	}
	nuevoIVA := l.IVAOriginal.Sub(ivaDesc)
	if nuevoIVA.IsNegative() {
		nuevoIVA = decimal.Zero
	}
	nuevoTotal := nuevoSinIVA.Add(nuevoIVA)
	nuevaRetencion := Retencion(nuevoSinIVA, tieneRetencion, l.RetencionPorcentaje)
	nuevoValorReal := nuevoTotal.Sub(nuevaRetencion)
	if nuevoValorReal.IsNegative() {
		nuevoValorReal = decimal.Zero
	}
	return FoldResult{
		NuevoSinIVA:    nuevoSinIVA,
		NuevoIVA:       nuevoIVA,
		NuevoTotal:     nuevoTotal,
		NuevaRetencion: nuevaRetencion,
		NuevoValorReal: nuevoValorReal,
	}
}
