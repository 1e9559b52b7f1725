package invoices

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
	"github.com/jhoicas/pagos-api/pkg/dian"
)

const formatoFecha = "2006-01-02"

// FacturaUseCase alta y consulta de facturas de proveedor. Las facturas
// entran manualmente o por ingesta de XML UBL 2.1; desde ahí las muta el
// motor de liquidación.
type FacturaUseCase struct {
	invoiceRepo repository.InvoiceRepository
	saldoRepo   repository.SaldoFavorRepository
	parser      FacturaParser
}

// NewFacturaUseCase construye el caso de uso.
func NewFacturaUseCase(invoiceRepo repository.InvoiceRepository, saldoRepo repository.SaldoFavorRepository, parser FacturaParser) *FacturaUseCase {
	return &FacturaUseCase{invoiceRepo: invoiceRepo, saldoRepo: saldoRepo, parser: parser}
}

// Crear registra una factura (o nota crédito) de proveedor.
func (uc *FacturaUseCase) Crear(ctx context.Context, in dto.CrearFacturaRequest) (*dto.FacturaResponse, error) {
	if in.NumeroFactura == "" || in.ProveedorNIT == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.TotalAPagar.IsPositive() || in.FacturaIVA.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	// NIT con dígito de verificación (10 dígitos): validar módulo 11 DIAN.
	if len(soloDigitos(in.ProveedorNIT)) >= 10 {
		if err := dian.ValidateNITVerificationDigit(in.ProveedorNIT); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	tipo := in.Tipo
	if tipo == "" {
		tipo = entity.TipoFactura
	}
	if tipo != entity.TipoFactura && tipo != entity.TipoNotaCredito {
		return nil, domain.ErrInvalidInput
	}

	fecha := time.Now()
	if in.Fecha != "" {
		f, err := time.Parse(formatoFecha, in.Fecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		fecha = f
	}

	descuentos := make([]entity.DescuentoAntesIVA, 0, len(in.Descuentos))
	for _, d := range in.Descuentos {
		if d.Tipo != entity.DescuentoPorcentaje && d.Tipo != entity.DescuentoValorFijo {
			return nil, domain.ErrInvalidInput
		}
		if d.Valor.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		descuentos = append(descuentos, entity.DescuentoAntesIVA{Concepto: d.Concepto, Valor: d.Valor, Tipo: d.Tipo})
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:                   uuid.New().String(),
		NumeroFactura:        in.NumeroFactura,
		ProveedorNIT:         in.ProveedorNIT,
		ProveedorNombre:      in.ProveedorNombre,
		Tipo:                 tipo,
		Fecha:                fecha,
		TotalAPagar:          in.TotalAPagar,
		FacturaIVA:           in.FacturaIVA,
		FacturaIVAPorcentaje: in.FacturaIVAPorcentaje,
		TieneRetencion:       in.TieneRetencion,
		MontoRetencion:       in.MontoRetencion,
		PorcentajeProntoPago: in.PorcentajeProntoPago,
		DescuentosAntesIVA:   descuentos,
		EstadoMercancia:      entity.EstadoMercanciaPendiente,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if tipo == entity.TipoNotaCredito {
		inv.EstadoNotaCredito = entity.EstadoNotaCreditoPendiente
	}
	if in.TotalSinIVA != nil {
		inv.TotalSinIVA = decimal.NewNullDecimal(*in.TotalSinIVA)
	}

	if err := uc.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}
	return toFacturaResponse(inv), nil
}

// IngestarXML crea una factura a partir de un documento UBL 2.1 del
// proveedor (attached document de factura electrónica).
func (uc *FacturaUseCase) IngestarXML(ctx context.Context, data []byte) (*dto.FacturaResponse, error) {
	in, err := uc.parser.ParseFactura(data)
	if err != nil {
		return nil, err
	}
	return uc.Crear(ctx, *in)
}

// Get devuelve una factura por id.
func (uc *FacturaUseCase) Get(ctx context.Context, id string) (*dto.FacturaResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toFacturaResponse(inv), nil
}

// List lista facturas filtrando por proveedor y/o estado.
func (uc *FacturaUseCase) List(ctx context.Context, proveedorNIT, estado string, page dto.PageRequest) ([]dto.FacturaResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(proveedorNIT, estado, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FacturaResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toFacturaResponse(inv))
	}
	return out, nil
}

// ValorReal calcula el valor real a pagar vigente de la factura (lectura
// pura: no muta nada) y el pendiente tras saldos ya aplicados.
func (uc *FacturaUseCase) ValorReal(ctx context.Context, id string, aplicarProntoPago bool) (*dto.ValorRealResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	apps, err := uc.saldoRepo.ListAplicacionesByFactura(id)
	if err != nil {
		return nil, err
	}
	aplicado := decimal.Zero
	for _, a := range apps {
		aplicado = aplicado.Add(a.Monto)
	}

	valorReal := domsettlement.ComputeValorReal(inv, aplicarProntoPago)
	pendiente := valorReal.Sub(aplicado)
	if pendiente.IsNegative() {
		pendiente = decimal.Zero
	}
	return &dto.ValorRealResponse{
		FacturaID:        id,
		AplicaProntoPago: aplicarProntoPago,
		ValorReal:        valorReal,
		SaldosAplicados:  aplicado,
		ValorPendiente:   pendiente,
	}, nil
}

func toFacturaResponse(inv *entity.Invoice) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:                   inv.ID,
		NumeroFactura:        inv.NumeroFactura,
		ProveedorNIT:         inv.ProveedorNIT,
		ProveedorNombre:      inv.ProveedorNombre,
		Tipo:                 inv.Tipo,
		Fecha:                inv.Fecha.Format(formatoFecha),
		TotalAPagar:          inv.TotalAPagar,
		FacturaIVA:           inv.FacturaIVA,
		FacturaIVAPorcentaje: inv.FacturaIVAPorcentaje,
		TieneRetencion:       inv.TieneRetencion,
		MontoRetencion:       inv.MontoRetencion,
		PorcentajeProntoPago: inv.PorcentajeProntoPago,
		UsoProntoPago:        inv.UsoProntoPago,
		EstadoMercancia:      inv.EstadoMercancia,
		EstadoNotaCredito:    inv.EstadoNotaCredito,
		MetodoPago:           inv.MetodoPago,
		FacturaOrigenID:      inv.FacturaOrigenID,
	}
	if inv.TotalSinIVA.Valid {
		v := inv.TotalSinIVA.Decimal
		resp.TotalSinIVA = &v
	}
	if inv.ValorRealAPagar.Valid {
		v := inv.ValorRealAPagar.Decimal
		resp.ValorRealAPagar = &v
	}
	if inv.FechaPago != nil {
		resp.FechaPago = inv.FechaPago.Format(formatoFecha)
	}
	for _, d := range inv.DescuentosAntesIVA {
		resp.Descuentos = append(resp.Descuentos, dto.DescuentoRequest{Concepto: d.Concepto, Valor: d.Valor, Tipo: d.Tipo})
	}
	return resp
}

func soloDigitos(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return string(out)
}
