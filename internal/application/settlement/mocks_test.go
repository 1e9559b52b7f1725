package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pagos-api/internal/domain"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
	"github.com/jhoicas/pagos-api/internal/domain/repository"
)

// Repos en memoria con la misma semántica que los adaptadores de PostgreSQL:
// GetByID devuelve copias (las mutaciones solo persisten vía UpdateTotales) y
// ApplyBalanceFavor replica el decremento guardado y el paso a agotado.

type memInvoiceRepo struct {
	facturas map[string]*entity.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{facturas: make(map[string]*entity.Invoice)}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.facturas[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.facturas[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) List(proveedorNIT, estadoMercancia string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.facturas {
		if proveedorNIT != "" && inv.ProveedorNIT != proveedorNIT {
			continue
		}
		if estadoMercancia != "" && inv.EstadoMercancia != estadoMercancia {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) UpdateTotales(inv *entity.Invoice) error {
	if _, ok := r.facturas[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.facturas[inv.ID] = &cp
	return nil
}

type memSaldoRepo struct {
	saldos map[string]*entity.SaldoFavor
	apps   []*entity.SaldoAplicacion
}

func newMemSaldoRepo() *memSaldoRepo {
	return &memSaldoRepo{saldos: make(map[string]*entity.SaldoFavor)}
}

func (r *memSaldoRepo) Create(s *entity.SaldoFavor) error {
	cp := *s
	r.saldos[s.ID] = &cp
	return nil
}

func (r *memSaldoRepo) GetByID(id string) (*entity.SaldoFavor, error) {
	s, ok := r.saldos[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSaldoRepo) ListDisponibles(proveedorNIT string) ([]*entity.SaldoFavor, error) {
	var out []*entity.SaldoFavor
	for _, s := range r.saldos {
		if s.Estado != entity.SaldoActivo || !s.SaldoDisponible.IsPositive() {
			continue
		}
		if proveedorNIT != "" && s.ProveedorNIT != proveedorNIT {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSaldoRepo) ApplyBalanceFavor(saldoID, facturaID string, monto decimal.Decimal) (*entity.SaldoFavor, error) {
	s, ok := r.saldos[saldoID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if s.Estado != entity.SaldoActivo {
		return nil, domain.ErrSaldoNoDisponible
	}
	if s.SaldoDisponible.LessThan(monto) {
		return nil, domain.ErrSaldoInsuficiente
	}
	s.SaldoDisponible = s.SaldoDisponible.Sub(monto)
	if !s.SaldoDisponible.IsPositive() {
		s.Estado = entity.SaldoAgotado
	}
	s.UpdatedAt = time.Now()
	r.apps = append(r.apps, &entity.SaldoAplicacion{
		ID:        uuid.New().String(),
		SaldoID:   saldoID,
		FacturaID: facturaID,
		Monto:     monto,
		Fecha:     time.Now(),
	})
	cp := *s
	return &cp, nil
}

func (r *memSaldoRepo) Anular(id string) error {
	s, ok := r.saldos[id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Estado != entity.SaldoActivo {
		return domain.ErrSaldoNoDisponible
	}
	s.Estado = entity.SaldoAnulado
	return nil
}

func (r *memSaldoRepo) ListAplicaciones(saldoID string) ([]*entity.SaldoAplicacion, error) {
	var out []*entity.SaldoAplicacion
	for _, a := range r.apps {
		if a.SaldoID == saldoID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memSaldoRepo) ListAplicacionesByFactura(facturaID string) ([]*entity.SaldoAplicacion, error) {
	var out []*entity.SaldoAplicacion
	for _, a := range r.apps {
		if a.FacturaID == facturaID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memPagoRepo struct {
	detalles []*entity.PagoDetalle
}

func newMemPagoRepo() *memPagoRepo { return &memPagoRepo{} }

func (r *memPagoRepo) CreateDetalle(p *entity.PagoDetalle) error {
	cp := *p
	r.detalles = append(r.detalles, &cp)
	return nil
}

func (r *memPagoRepo) ListByFactura(facturaID string) ([]*entity.PagoDetalle, error) {
	var out []*entity.PagoDetalle
	for _, p := range r.detalles {
		if p.FacturaID == facturaID {
			out = append(out, p)
		}
	}
	return out, nil
}

// memTxRunner ejecuta el callback directo sobre los repos en memoria (sin
// semántica de rollback; los casos de fallo transaccional se prueban contra
// PostgreSQL real).
type memTxRunner struct {
	invoiceRepo *memInvoiceRepo
	saldoRepo   *memSaldoRepo
	pagoRepo    *memPagoRepo
}

func (t *memTxRunner) RunSettlement(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	saldoRepo repository.SaldoFavorRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	return fn(t.invoiceRepo, t.saldoRepo, t.pagoRepo)
}

// entorno de test con todos los repos compartiendo almacenamiento.
type testEnv struct {
	invoiceRepo *memInvoiceRepo
	saldoRepo   *memSaldoRepo
	pagoRepo    *memPagoRepo
	txRunner    *memTxRunner
}

func newTestEnv() *testEnv {
	env := &testEnv{
		invoiceRepo: newMemInvoiceRepo(),
		saldoRepo:   newMemSaldoRepo(),
		pagoRepo:    newMemPagoRepo(),
	}
	env.txRunner = &memTxRunner{
		invoiceRepo: env.invoiceRepo,
		saldoRepo:   env.saldoRepo,
		pagoRepo:    env.pagoRepo,
	}
	return env
}

// facturaPendiente crea una factura típica: base 100.000, IVA 19.000, sin
// retención ni pronto pago.
func facturaPendiente(id string) *entity.Invoice {
	now := time.Now()
	return &entity.Invoice{
		ID:              id,
		NumeroFactura:   "FE-" + id,
		ProveedorNIT:    "900123456-8",
		ProveedorNombre: "Distribuidora La Esperanza SAS",
		Tipo:            entity.TipoFactura,
		Fecha:           now,
		TotalAPagar:     decimal.NewFromInt(119000),
		FacturaIVA:      decimal.NewFromInt(19000),
		TotalSinIVA:     decimal.NewNullDecimal(decimal.NewFromInt(100000)),
		EstadoMercancia: entity.EstadoMercanciaPendiente,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// igualPesos compara un decimal contra un valor esperado en pesos enteros.
func igualPesos(t *testing.T, esperado int64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(esperado).Equal(actual),
		"esperado %d, obtenido %s", esperado, actual.String())
}

func saldoActivo(id string, monto int64) *entity.SaldoFavor {
	now := time.Now()
	return &entity.SaldoFavor{
		ID:              id,
		ProveedorNIT:    "900123456-8",
		ProveedorNombre: "Distribuidora La Esperanza SAS",
		MontoInicial:    decimal.NewFromInt(monto),
		SaldoDisponible: decimal.NewFromInt(monto),
		Motivo:          entity.MotivoSobrepago,
		Estado:          entity.SaldoActivo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
