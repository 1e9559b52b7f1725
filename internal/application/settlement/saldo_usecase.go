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

// SaldoFavorUseCase administra saldos a favor de proveedores y su aplicación
// contra facturas.
type SaldoFavorUseCase struct {
	txRunner    TxRunner
	saldoRepo   repository.SaldoFavorRepository
	invoiceRepo repository.InvoiceRepository
}

// NewSaldoFavorUseCase construye el caso de uso.
func NewSaldoFavorUseCase(txRunner TxRunner, saldoRepo repository.SaldoFavorRepository, invoiceRepo repository.InvoiceRepository) *SaldoFavorUseCase {
	return &SaldoFavorUseCase{txRunner: txRunner, saldoRepo: saldoRepo, invoiceRepo: invoiceRepo}
}

// Crear registra un saldo a favor nuevo (sobrepago, nota crédito o manual).
func (uc *SaldoFavorUseCase) Crear(ctx context.Context, in dto.CrearSaldoRequest) (*dto.SaldoResponse, error) {
	if in.ProveedorNIT == "" || !in.MontoInicial.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	motivo := in.Motivo
	if motivo == "" {
		motivo = entity.MotivoManual
	}
	if motivo != entity.MotivoSobrepago && motivo != entity.MotivoNotaCredito && motivo != entity.MotivoManual {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.SaldoFavor{
		ID:              uuid.New().String(),
		ProveedorNIT:    in.ProveedorNIT,
		ProveedorNombre: in.ProveedorNombre,
		MontoInicial:    in.MontoInicial,
		SaldoDisponible: in.MontoInicial,
		Motivo:          motivo,
		MedioPago:       in.MedioPago,
		Estado:          entity.SaldoActivo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.saldoRepo.Create(s); err != nil {
		return nil, err
	}
	return toSaldoResponse(s), nil
}

// ListarDisponibles devuelve los saldos activos del proveedor. La lectura
// refleja cualquier aplicación previa de inmediato (read-after-write contra
// el almacén, sin caché).
func (uc *SaldoFavorUseCase) ListarDisponibles(ctx context.Context, proveedorNIT string) ([]dto.SaldoResponse, error) {
	if proveedorNIT == "" {
		return nil, domain.ErrInvalidInput
	}
	saldos, err := uc.saldoRepo.ListDisponibles(proveedorNIT)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaldoResponse, 0, len(saldos))
	for _, s := range saldos {
		out = append(out, *toSaldoResponse(s))
	}
	return out, nil
}

// Anular marca el saldo como anulado (terminal).
func (uc *SaldoFavorUseCase) Anular(ctx context.Context, saldoID string) error {
	if saldoID == "" {
		return domain.ErrInvalidInput
	}
	return uc.saldoRepo.Anular(saldoID)
}

// Aplicar aplica un monto del saldo contra una factura.
//
// Precondición: 0 < monto <= saldo_disponible y monto <= valor pendiente de
// la factura. El decremento del saldo, la fila de aplicación y la reducción
// de valor_real_a_pagar de la factura se confirman en una sola transacción.
func (uc *SaldoFavorUseCase) Aplicar(ctx context.Context, saldoID string, in dto.AplicarSaldoRequest) (*dto.AplicarSaldoResponse, error) {
	return uc.aplicar(ctx, saldoID, []aplicacionPlaneada{{facturaID: in.FacturaID, monto: in.Monto}})
}

// AplicarLote aplica un monto del saldo repartido entre las facturas del
// lote EN PARTES IGUALES por número de facturas (política explícita, no
// proporcional al monto de cada factura). La cuota se redondea a pesos
// enteros y la última factura absorbe el residuo para conservar el total.
func (uc *SaldoFavorUseCase) AplicarLote(ctx context.Context, saldoID string, in dto.AplicarSaldoLoteRequest) (*dto.AplicarSaldoResponse, error) {
	n := len(in.FacturaIDs)
	if n == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.MontoTotal.IsPositive() {
		return nil, domain.ErrMontoInvalido
	}
	cuota := in.MontoTotal.Div(decimal.NewFromInt(int64(n))).Floor()
	planes := make([]aplicacionPlaneada, n)
	for i, id := range in.FacturaIDs {
		planes[i] = aplicacionPlaneada{facturaID: id, monto: cuota}
	}
	// La última absorbe el residuo del redondeo.
	planes[n-1].monto = in.MontoTotal.Sub(cuota.Mul(decimal.NewFromInt(int64(n - 1))))
	return uc.aplicar(ctx, saldoID, planes)
}

type aplicacionPlaneada struct {
	facturaID string
	monto     decimal.Decimal
}

func (uc *SaldoFavorUseCase) aplicar(ctx context.Context, saldoID string, planes []aplicacionPlaneada) (*dto.AplicarSaldoResponse, error) {
	if saldoID == "" {
		return nil, domain.ErrInvalidInput
	}

	saldo, err := uc.saldoRepo.GetByID(saldoID)
	if err != nil {
		return nil, err
	}
	if saldo == nil {
		return nil, domain.ErrNotFound
	}
	if saldo.Estado != entity.SaldoActivo {
		return nil, domain.ErrSaldoNoDisponible
	}

	// Validación completa antes de cualquier escritura: montos positivos, la
	// suma cabe en el disponible y cada cuota cabe en su factura.
	total := decimal.Zero
	for _, p := range planes {
		if p.facturaID == "" {
			return nil, domain.ErrInvalidInput
		}
		if !p.monto.IsPositive() {
			return nil, domain.ErrMontoInvalido
		}
		total = total.Add(p.monto)

		inv, err := uc.invoiceRepo.GetByID(p.facturaID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, domain.ErrNotFound
		}
		if inv.Pagada() {
			return nil, domain.ErrFacturaYaPagada
		}
		if p.monto.GreaterThan(valorPendiente(inv)) {
			return nil, domain.ErrMontoExcedeFactura
		}
	}
	if total.GreaterThan(saldo.SaldoDisponible) {
		return nil, domain.ErrSaldoInsuficiente
	}

	resp := &dto.AplicarSaldoResponse{SaldoID: saldo.ID}

	// Cada aplicación corre en su propia transacción: decremento atómico
	// guardado + fila de aplicación + actualización de la factura. Un fallo
	// en la aplicación k no revierte las anteriores; el saldo ya descontado
	// queda consistente con sus filas de aplicación.
	for _, p := range planes {
		montoAplicado := p.monto
		var inv *entity.Invoice
		err := uc.txRunner.RunSettlement(ctx, func(
			invoiceRepo repository.InvoiceRepository,
			saldoRepo repository.SaldoFavorRepository,
			_ repository.PagoRepository,
		) error {
			// La factura se relee dentro de la transacción: si el lote la
			// repite, cada cuota se pliega sobre el valor ya reducido por la
			// cuota anterior, no sobre la lectura previa a las escrituras.
			var err error
			inv, err = invoiceRepo.GetByID(p.facturaID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrNotFound
			}
			if inv.Pagada() {
				return domain.ErrFacturaYaPagada
			}
			if montoAplicado.GreaterThan(valorPendiente(inv)) {
				return domain.ErrMontoExcedeFactura
			}

			actualizado, err := saldoRepo.ApplyBalanceFavor(saldo.ID, inv.ID, montoAplicado)
			if err != nil {
				return err
			}
			saldo = actualizado

			nuevoValor := valorPendiente(inv).Sub(montoAplicado)
			if nuevoValor.IsNegative() {
				nuevoValor = decimal.Zero
			}
			inv.ValorRealAPagar = decimal.NewNullDecimal(nuevoValor)
			inv.UpdatedAt = time.Now()

			// Mantener el ledger coherente con la caché persistida.
			if ledger := domsettlement.ParseLedger(inv.Notas); ledger.TieneSnapshot() {
				ledger.ValorRealAPagar = nuevoValor
				raw, err := ledger.Encode()
				if err != nil {
					return err
				}
				inv.Notas = raw
			}
			return invoiceRepo.UpdateTotales(inv)
		})
		if err != nil {
			return nil, err
		}
		resp.Aplicaciones = append(resp.Aplicaciones, dto.AplicacionFacturaResult{
			FacturaID:      inv.ID,
			MontoAplicado:  montoAplicado,
			NuevoValorReal: inv.ValorRealAPagar.Decimal,
		})
	}

	resp.SaldoDisponible = saldo.SaldoDisponible
	resp.Estado = saldo.Estado
	return resp, nil
}

// valorPendiente devuelve el valor vigente por pagar de la factura: la caché
// valor_real_a_pagar si existe (ya con saldos plegados), o el cálculo puro
// sin pronto pago si aún no se ha materializado.
func valorPendiente(inv *entity.Invoice) decimal.Decimal {
	if inv.ValorRealAPagar.Valid {
		return inv.ValorRealAPagar.Decimal
	}
	return domsettlement.ComputeValorReal(inv, false)
}

func toSaldoResponse(s *entity.SaldoFavor) *dto.SaldoResponse {
	return &dto.SaldoResponse{
		ID:              s.ID,
		ProveedorNIT:    s.ProveedorNIT,
		ProveedorNombre: s.ProveedorNombre,
		MontoInicial:    s.MontoInicial,
		SaldoDisponible: s.SaldoDisponible,
		Motivo:          s.Motivo,
		MedioPago:       s.MedioPago,
		Estado:          s.Estado,
	}
}
