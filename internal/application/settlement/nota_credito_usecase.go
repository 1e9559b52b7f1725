package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/domain"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
	"github.com/jhoicas/pagos-api/internal/domain/repository"
	domsettlement "github.com/jhoicas/pagos-api/internal/domain/settlement"
)

// NotaCreditoUseCase aplica notas crédito contra facturas originales,
// manteniendo el ledger de ajustes y los totales residuales.
type NotaCreditoUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
}

// NewNotaCreditoUseCase construye el caso de uso.
func NewNotaCreditoUseCase(txRunner TxRunner, invoiceRepo repository.InvoiceRepository) *NotaCreditoUseCase {
	return &NotaCreditoUseCase{txRunner: txRunner, invoiceRepo: invoiceRepo}
}

// Aplicar aplica la nota crédito contra la factura original.
//
// Validaciones (antes de cualquier escritura): las dos facturas existen y son
// distintas, la nota crédito está pendiente y 0 < nc.total_a_pagar <=
// original.total_a_pagar.
//
// Efectos, dentro de una sola transacción:
//   - Si el ledger del original no tiene snapshot, captura los valores
//     originales ACTUALES (sucede exactamente una vez, con la primera NC).
//   - Anexa el registro de la NC y repliega el ledger completo; los campos
//     brutos del original quedan como el residual tras créditos, por diseño.
//   - Si el residual llega a cero: el original queda anulado y reclasificado
//     como nota crédito, y la NC aplicada también queda anulada.
//   - La NC queda enlazada al original; sus propios totales nunca se tocan
//     (siguen siendo los extraídos del documento fuente).
func (uc *NotaCreditoUseCase) Aplicar(ctx context.Context, notaCreditoID, facturaID string) (*dto.AplicarNotaCreditoResponse, error) {
	if notaCreditoID == "" || facturaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if notaCreditoID == facturaID {
		return nil, domain.ErrNotaCreditoInvalida
	}

	nc, err := uc.invoiceRepo.GetByID(notaCreditoID)
	if err != nil {
		return nil, err
	}
	original, err := uc.invoiceRepo.GetByID(facturaID)
	if err != nil {
		return nil, err
	}
	if nc == nil || original == nil {
		return nil, domain.ErrNotFound
	}
	if nc.EstadoNotaCredito == entity.EstadoNotaCreditoAplicada ||
		nc.EstadoNotaCredito == entity.EstadoNotaCreditoAnulada {
		return nil, domain.ErrNotaCreditoAplicada
	}
	if !nc.TotalAPagar.IsPositive() || nc.TotalAPagar.GreaterThan(original.TotalAPagar) {
		return nil, domain.ErrNotaCreditoInvalida
	}

	ledger := domsettlement.ParseLedger(original.Notas)
	ledger.Snapshot(original)

	ncSinIVA := domsettlement.BaseSinIVA(nc)
	ledger.Append(domsettlement.NotaCreditoRecord{
		FacturaID:         nc.ID,
		NumeroFactura:     nc.NumeroFactura,
		ValorDescuento:    nc.TotalAPagar,
		DescuentoSinIVA:   ncSinIVA,
		IVADescuento:      nc.FacturaIVA,
		FechaAplicacion:   time.Now(),
		RetencionReducida: domsettlement.Retencion(ncSinIVA, original.TieneRetencion, ledger.RetencionPorcentaje),
	})

	fold := ledger.Fold(original.TieneRetencion)
	ledger.RetencionActual = fold.NuevaRetencion
	ledger.ValorRealAPagar = fold.NuevoValorReal

	raw, err := ledger.Encode()
	if err != nil {
		return nil, err
	}

	anulada := fold.NuevoTotal.IsZero()
	now := time.Now()

	original.TotalAPagar = fold.NuevoTotal
	original.FacturaIVA = fold.NuevoIVA
	original.TotalSinIVA = decimal.NewNullDecimal(fold.NuevoSinIVA)
	original.ValorRealAPagar = decimal.NewNullDecimal(fold.NuevoValorReal)
	original.Notas = raw
	original.UpdatedAt = now
	if anulada {
		original.EstadoNotaCredito = entity.EstadoNotaCreditoAnulada
		original.Tipo = entity.TipoNotaCredito
	}

	nc.FacturaOrigenID = original.ID
	nc.EstadoNotaCredito = entity.EstadoNotaCreditoAplicada
	if anulada {
		nc.EstadoNotaCredito = entity.EstadoNotaCreditoAnulada
	}
	nc.UpdatedAt = now

	err = uc.txRunner.RunSettlement(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.SaldoFavorRepository,
		_ repository.PagoRepository,
	) error {
		if err := invoiceRepo.UpdateTotales(nc); err != nil {
			return err
		}
		return invoiceRepo.UpdateTotales(original)
	})
	if err != nil {
		return nil, err
	}

	return &dto.AplicarNotaCreditoResponse{
		FacturaID:      original.ID,
		NotaCreditoID:  nc.ID,
		NuevoSinIVA:    fold.NuevoSinIVA,
		NuevoIVA:       fold.NuevoIVA,
		NuevoTotal:     fold.NuevoTotal,
		NuevaRetencion: fold.NuevaRetencion,
		NuevoValorReal: fold.NuevoValorReal,
		Anulada:        anulada,
	}, nil
}
