package settlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/domain"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
	"github.com/jhoicas/pagos-api/internal/domain/repository"
	domsettlement "github.com/jhoicas/pagos-api/internal/domain/settlement"
)

const formatoFecha = "2006-01-02"

// PagoUseCase liquida facturas: calcula el valor final con el motor, valida
// la distribución del pago y persiste el desenlace (estado, método, fecha,
// líneas de pago y la instantánea del valor liquidado).
type PagoUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	saldoRepo   repository.SaldoFavorRepository
	pagoRepo    repository.PagoRepository
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(txRunner TxRunner, invoiceRepo repository.InvoiceRepository, saldoRepo repository.SaldoFavorRepository, pagoRepo repository.PagoRepository) *PagoUseCase {
	return &PagoUseCase{txRunner: txRunner, invoiceRepo: invoiceRepo, saldoRepo: saldoRepo, pagoRepo: pagoRepo}
}

// ValidarPagoPartido valida una distribución (canal, monto) contra el
// objetivo sin tocar la persistencia.
func (uc *PagoUseCase) ValidarPagoPartido(ctx context.Context, in dto.ValidarPagoPartidoRequest) error {
	return domsettlement.ValidarPagoPartido(in.Objetivo, toLineas(in.Lineas))
}

// Pagar liquida una factura.
//
// El valor final es ComputeValorReal(factura, aplicarProntoPago) menos los
// saldos a favor ya aplicados a la factura. Con líneas se valida el pago
// partido contra ese valor y metodo_pago queda en el centinela "Pago
// Partido"; sin líneas se persiste una sola línea con el método indicado.
// Todas las escrituras van en una transacción.
func (uc *PagoUseCase) Pagar(ctx context.Context, in dto.PagarRequest) (*dto.PagoResponse, error) {
	if in.FacturaID == "" {
		return nil, domain.ErrInvalidInput
	}

	inv, err := uc.invoiceRepo.GetByID(in.FacturaID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Pagada() {
		return nil, domain.ErrFacturaYaPagada
	}
	if inv.Tipo == entity.TipoNotaCredito {
		return nil, domain.ErrInvalidInput
	}

	saldosAplicados, err := uc.saldosAplicados(inv.ID)
	if err != nil {
		return nil, err
	}
	valorFinal := domsettlement.ComputeValorReal(inv, in.AplicarProntoPago).Sub(saldosAplicados)
	if valorFinal.IsNegative() {
		valorFinal = decimal.Zero
	}

	partido := len(in.Lineas) > 0
	metodo := in.MetodoPago
	lineas := toLineas(in.Lineas)
	if partido {
		if err := domsettlement.ValidarPagoPartido(valorFinal, lineas); err != nil {
			return nil, err
		}
		metodo = entity.MetodoPagoPartido
	} else {
		if metodo == "" {
			return nil, domain.ErrInvalidInput
		}
		lineas = []domsettlement.LineaPago{{MedioPago: metodo, Monto: valorFinal}}
	}

	fechaPago, err := parseFechaPago(in.FechaPago)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	inv.EstadoMercancia = entity.EstadoMercanciaPagada
	inv.MetodoPago = metodo
	inv.FechaPago = &fechaPago
	inv.UsoProntoPago = in.AplicarProntoPago
	inv.ValorRealAPagar = decimal.NewNullDecimal(valorFinal)
	inv.UpdatedAt = time.Now()
	if ledger := domsettlement.ParseLedger(inv.Notas); ledger.TieneSnapshot() {
		ledger.ValorRealAPagar = valorFinal
		raw, err := ledger.Encode()
		if err != nil {
			return nil, err
		}
		inv.Notas = raw
	}

	err = uc.txRunner.RunSettlement(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.SaldoFavorRepository,
		pagoRepo repository.PagoRepository,
	) error {
		if err := invoiceRepo.UpdateTotales(inv); err != nil {
			return err
		}
		for _, l := range lineas {
			detalle := &entity.PagoDetalle{
				ID:        uuid.New().String(),
				FacturaID: inv.ID,
				MedioPago: l.MedioPago,
				Monto:     l.Monto,
				Fecha:     fechaPago,
			}
			if err := pagoRepo.CreateDetalle(detalle); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.PagoResponse{
		FacturaID:     inv.ID,
		ValorPagado:   valorFinal,
		MetodoPago:    metodo,
		FechaPago:     fechaPago.Format(formatoFecha),
		UsoProntoPago: in.AplicarProntoPago,
	}
	for _, l := range lineas {
		out.Lineas = append(out.Lineas, dto.LineaPagoRequest{MedioPago: l.MedioPago, Monto: l.Monto})
	}
	return out, nil
}

// PagarLote liquida un lote de facturas, cada una de forma independiente: un
// fallo en la factura k no revierte las 1..k-1 ya confirmadas. El resultado
// reporta "procesadas N de M" con el detalle por factura, de modo que un
// reintento solo toca las pendientes (las ya pagadas se rechazan con
// ErrFacturaYaPagada).
func (uc *PagoUseCase) PagarLote(ctx context.Context, in dto.PagarLoteRequest) (*dto.PagoLoteResponse, error) {
	if len(in.FacturaIDs) == 0 || in.MetodoPago == "" {
		return nil, domain.ErrInvalidInput
	}

	resp := &dto.PagoLoteResponse{Total: len(in.FacturaIDs)}
	for _, id := range in.FacturaIDs {
		item := dto.PagoLoteItem{FacturaID: id}
		pago, err := uc.Pagar(ctx, dto.PagarRequest{
			FacturaID:         id,
			MetodoPago:        in.MetodoPago,
			AplicarProntoPago: in.AplicarProntoPago,
			FechaPago:         in.FechaPago,
		})
		if err != nil {
			item.Error = err.Error()
		} else {
			item.OK = true
			item.ValorPagado = &pago.ValorPagado
			resp.Procesadas++
		}
		resp.Resultados = append(resp.Resultados, item)
	}
	return resp, nil
}

// saldosAplicados suma los montos de saldos a favor ya aplicados a la factura.
func (uc *PagoUseCase) saldosAplicados(facturaID string) (decimal.Decimal, error) {
	apps, err := uc.saldoRepo.ListAplicacionesByFactura(facturaID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range apps {
		total = total.Add(a.Monto)
	}
	return total, nil
}

func toLineas(in []dto.LineaPagoRequest) []domsettlement.LineaPago {
	out := make([]domsettlement.LineaPago, 0, len(in))
	for _, l := range in {
		out = append(out, domsettlement.LineaPago{MedioPago: l.MedioPago, Monto: l.Monto})
	}
	return out
}

func parseFechaPago(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse(formatoFecha, s)
}
