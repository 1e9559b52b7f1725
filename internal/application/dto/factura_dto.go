package dto

import "github.com/shopspring/decimal"

// DescuentoRequest un descuento antes de IVA en la creación de la factura.
type DescuentoRequest struct {
	Concepto string          `json:"concepto"`
	Valor    decimal.Decimal `json:"valor"`
	Tipo     string          `json:"tipo"` // porcentaje | valor_fijo
}

// CrearFacturaRequest alta manual de una factura de proveedor (o nota crédito).
type CrearFacturaRequest struct {
	NumeroFactura        string             `json:"numero_factura"`
	ProveedorNIT         string             `json:"proveedor_nit"`
	ProveedorNombre      string             `json:"proveedor_nombre"`
	Tipo                 string             `json:"tipo"` // factura (por defecto) | nota_credito
	Fecha                string             `json:"fecha"` // YYYY-MM-DD
	TotalAPagar          decimal.Decimal    `json:"total_a_pagar"`
	FacturaIVA           decimal.Decimal    `json:"factura_iva"`
	FacturaIVAPorcentaje decimal.Decimal    `json:"factura_iva_porcentaje"`
	TotalSinIVA          *decimal.Decimal   `json:"total_sin_iva,omitempty"`
	TieneRetencion       bool               `json:"tiene_retencion"`
	MontoRetencion       decimal.Decimal    `json:"monto_retencion"` // porcentaje
	PorcentajeProntoPago decimal.Decimal    `json:"porcentaje_pronto_pago"`
	Descuentos           []DescuentoRequest `json:"descuentos_antes_iva,omitempty"`
}

// FacturaResponse representación de una factura hacia la UI.
type FacturaResponse struct {
	ID                   string             `json:"id"`
	NumeroFactura        string             `json:"numero_factura"`
	ProveedorNIT         string             `json:"proveedor_nit"`
	ProveedorNombre      string             `json:"proveedor_nombre"`
	Tipo                 string             `json:"tipo"`
	Fecha                string             `json:"fecha"`
	TotalAPagar          decimal.Decimal    `json:"total_a_pagar"`
	FacturaIVA           decimal.Decimal    `json:"factura_iva"`
	FacturaIVAPorcentaje decimal.Decimal    `json:"factura_iva_porcentaje"`
	TotalSinIVA          *decimal.Decimal   `json:"total_sin_iva,omitempty"`
	TieneRetencion       bool               `json:"tiene_retencion"`
	MontoRetencion       decimal.Decimal    `json:"monto_retencion"`
	PorcentajeProntoPago decimal.Decimal    `json:"porcentaje_pronto_pago"`
	UsoProntoPago        bool               `json:"uso_pronto_pago"`
	Descuentos           []DescuentoRequest `json:"descuentos_antes_iva,omitempty"`
	ValorRealAPagar      *decimal.Decimal   `json:"valor_real_a_pagar,omitempty"`
	EstadoMercancia      string             `json:"estado_mercancia"`
	EstadoNotaCredito    string             `json:"estado_nota_credito,omitempty"`
	MetodoPago           string             `json:"metodo_pago,omitempty"`
	FechaPago            string             `json:"fecha_pago,omitempty"`
	FacturaOrigenID      string             `json:"factura_origen_id,omitempty"`
}

// ValorRealResponse resultado del cálculo puro, sin efectos sobre la factura.
type ValorRealResponse struct {
	FacturaID        string          `json:"factura_id"`
	AplicaProntoPago bool            `json:"aplica_pronto_pago"`
	ValorReal        decimal.Decimal `json:"valor_real"`
	SaldosAplicados  decimal.Decimal `json:"saldos_aplicados"`
	ValorPendiente   decimal.Decimal `json:"valor_pendiente"`
}
