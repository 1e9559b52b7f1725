package dto

import "github.com/shopspring/decimal"

// AplicarNotaCreditoResponse resultado de aplicar una nota crédito: los
// totales residuales persistidos sobre la factura original.
type AplicarNotaCreditoResponse struct {
	FacturaID      string          `json:"factura_id"`
	NotaCreditoID  string          `json:"nota_credito_id"`
	NuevoSinIVA    decimal.Decimal `json:"nuevo_total_sin_iva"`
	NuevoIVA       decimal.Decimal `json:"nuevo_iva"`
	NuevoTotal     decimal.Decimal `json:"nuevo_total"`
	NuevaRetencion decimal.Decimal `json:"nueva_retencion"`
	NuevoValorReal decimal.Decimal `json:"nuevo_valor_real"`
	Anulada        bool            `json:"anulada"` // el residual llegó a cero
}

// CrearSaldoRequest alta de un saldo a favor de un proveedor.
type CrearSaldoRequest struct {
	ProveedorNIT    string          `json:"proveedor_nit"`
	ProveedorNombre string          `json:"proveedor_nombre"`
	MontoInicial    decimal.Decimal `json:"monto_inicial"`
	Motivo          string          `json:"motivo"` // sobrepago | nota_credito | manual
	MedioPago       string          `json:"medio_pago"`
}

// SaldoResponse representación de un saldo a favor.
type SaldoResponse struct {
	ID              string          `json:"id"`
	ProveedorNIT    string          `json:"proveedor_nit"`
	ProveedorNombre string          `json:"proveedor_nombre"`
	MontoInicial    decimal.Decimal `json:"monto_inicial"`
	SaldoDisponible decimal.Decimal `json:"saldo_disponible"`
	Motivo          string          `json:"motivo"`
	MedioPago       string          `json:"medio_pago"`
	Estado          string          `json:"estado"`
}

// AplicarSaldoRequest aplica parte de un saldo contra una factura.
type AplicarSaldoRequest struct {
	FacturaID string          `json:"factura_id"`
	Monto     decimal.Decimal `json:"monto"`
}

// AplicarSaldoLoteRequest aplica un monto de un saldo repartido en partes
// iguales entre las facturas del lote (política explícita: por número de
// facturas, no proporcional al monto).
type AplicarSaldoLoteRequest struct {
	FacturaIDs []string        `json:"factura_ids"`
	MontoTotal decimal.Decimal `json:"monto_total"`
}

// AplicacionFacturaResult resultado por factura de una aplicación de saldo.
type AplicacionFacturaResult struct {
	FacturaID      string          `json:"factura_id"`
	MontoAplicado  decimal.Decimal `json:"monto_aplicado"`
	NuevoValorReal decimal.Decimal `json:"nuevo_valor_real"`
}

// AplicarSaldoResponse estado del saldo tras la aplicación.
type AplicarSaldoResponse struct {
	SaldoID         string                    `json:"saldo_id"`
	SaldoDisponible decimal.Decimal           `json:"saldo_disponible"`
	Estado          string                    `json:"estado"`
	Aplicaciones    []AplicacionFacturaResult `json:"aplicaciones"`
}

// LineaPagoRequest un par (canal, monto) de un pago partido.
type LineaPagoRequest struct {
	MedioPago string          `json:"medio_pago"`
	Monto     decimal.Decimal `json:"monto"`
}

// ValidarPagoPartidoRequest validación previa de una distribución de pago.
type ValidarPagoPartidoRequest struct {
	Objetivo decimal.Decimal    `json:"objetivo"`
	Lineas   []LineaPagoRequest `json:"lineas"`
}

// PagarRequest liquidación de una factura: un solo método o pago partido.
type PagarRequest struct {
	FacturaID         string             `json:"factura_id"`
	MetodoPago        string             `json:"metodo_pago,omitempty"`
	Lineas            []LineaPagoRequest `json:"lineas,omitempty"`
	AplicarProntoPago bool               `json:"aplicar_pronto_pago"`
	FechaPago         string             `json:"fecha_pago,omitempty"` // YYYY-MM-DD; hoy si falta
}

// PagoResponse resultado de la liquidación de una factura.
type PagoResponse struct {
	FacturaID     string             `json:"factura_id"`
	ValorPagado   decimal.Decimal    `json:"valor_pagado"`
	MetodoPago    string             `json:"metodo_pago"`
	FechaPago     string             `json:"fecha_pago"`
	UsoProntoPago bool               `json:"uso_pronto_pago"`
	Lineas        []LineaPagoRequest `json:"lineas"`
}

// PagarLoteRequest liquidación de varias facturas en una acción; cada una se
// procesa de forma independiente.
type PagarLoteRequest struct {
	FacturaIDs        []string `json:"factura_ids"`
	MetodoPago        string   `json:"metodo_pago"`
	AplicarProntoPago bool     `json:"aplicar_pronto_pago"`
	FechaPago         string   `json:"fecha_pago,omitempty"`
}

// PagoLoteItem resultado por factura del lote.
type PagoLoteItem struct {
	FacturaID   string           `json:"factura_id"`
	OK          bool             `json:"ok"`
	Error       string           `json:"error,omitempty"`
	ValorPagado *decimal.Decimal `json:"valor_pagado,omitempty"`
}

// PagoLoteResponse reporte explícito del lote: "procesadas N de M" con el
// detalle por factura; un fallo en una no revierte las anteriores.
type PagoLoteResponse struct {
	Total      int            `json:"total"`
	Procesadas int            `json:"procesadas"`
	Resultados []PagoLoteItem `json:"resultados"`
}
