package settlement_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pagos-api/internal/application/dto"
	"github.com/jhoicas/pagos-api/internal/application/settlement"
	"github.com/jhoicas/pagos-api/internal/domain"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
)

func TestSaldo_CrearYListarDisponibles(t *testing.T) {
	env := newTestEnv()
	uc := settlement.NewSaldoFavorUseCase(env.txRunner, env.saldoRepo, env.invoiceRepo)
	ctx := context.Background()

	resp, err := uc.Crear(ctx, dto.CrearSaldoRequest{
		ProveedorNIT:    "900123456-8",
		ProveedorNombre: "Distribuidora La Esperanza SAS",
		MontoInicial:    decimal.NewFromInt(50000),
		Motivo:          entity.MotivoSobrepago,
		MedioPago:       "transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaldoActivo, resp.Estado)
	igualPesos(t, 50000, resp.SaldoDisponible)

	list, err := uc.ListarDisponibles(ctx, "900123456-8")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, resp.ID, list[0].ID)

	// Otro NIT no ve el saldo.
	list, err = uc.ListarDisponibles(ctx, "800999999-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Crear(ctx, dto.CrearSaldoRequest{ProveedorNIT: "900123456-8", MontoInicial: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto inicial debe ser positivo")
}

// Dos aplicaciones sucesivas de 30.000 y 20.000 agotan un saldo de 50.000:
// el estado pasa a agotado, quedan dos filas de aplicación y cada factura
// refleja la reducción en su valor real.
func TestSaldo_AplicacionesSucesivasAgotanElSaldo(t *testing.T) {
	env := newTestEnv()
	uc := settlement.NewSaldoFavorUseCase(env.txRunner, env.saldoRepo, env.invoiceRepo)
	ctx := context.Background()

	require.NoError(t, env.saldoRepo.Create(saldoActivo("s1", 50000)))
	require.NoError(t, env.invoiceRepo.Create(facturaPendiente("f1")))
	require.NoError(t, env.invoiceRepo.Create(facturaPendiente("f2")))

	resp, err := uc.Aplicar(ctx, "s1", dto.AplicarSaldoRequest{FacturaID: "f1", Monto: decimal.NewFromInt(30000)})
	require.NoError(t, err)
	igualPesos(t, 20000, resp.SaldoDisponible)
	assert.Equal(t, entity.SaldoActivo, resp.Estado)
	require.Len(t, resp.Aplicaciones, 1)
	igualPesos(t, 89000, resp.Aplicaciones[0].NuevoValorReal)

	resp, err = uc.Aplicar(ctx, "s1", dto.AplicarSaldoRequest{FacturaID: "f2", Monto: decimal.NewFromInt(20000)})
	require.NoError(t, err)
	igualPesos(t, 0, resp.SaldoDisponible)
	assert.Equal(t, entity.SaldoAgotado, resp.Estado)

	apps, err := env.saldoRepo.ListAplicaciones("s1")
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	f1, _ := env.invoiceRepo.GetByID("f1")
	require.True(t, f1.ValorRealAPagar.Valid)
	igualPesos(t, 89000, f1.ValorRealAPagar.Decimal)
	f2, _ := env.invoiceRepo.GetByID("f2")
	igualPesos(t, 99000, f2.ValorRealAPagar.Decimal)

	// Un saldo agotado no admite más aplicaciones y nunca resucita.
	_, err = uc.Aplicar(ctx, "s1", dto.AplicarSaldoRequest{FacturaID: "f1", Monto: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrSaldoNoDisponible)
}

// El reparto del lote es en partes iguales POR NÚMERO DE FACTURAS, con cuota
// redondeada a pesos enteros; la última factura absorbe el residuo.
func TestSaldo_AplicarLote_RepartoEnPartesIguales(t *testing.T) {
	env := newTestEnv()
	uc := settlement.NewSaldoFavorUseCase(env.txRunner, env.saldoRepo, env.invoiceRepo)

	require.NoError(t, env.saldoRepo.Create(saldoActivo("s1", 10000)))
	for _, id := range []string{"f1", "f2", "f3"} {
		require.NoError(t, env.invoiceRepo.Create(facturaPendiente(id)))
	}

	resp, err := uc.AplicarLote(context.Background(), "s1", dto.AplicarSaldoLoteRequest{
		FacturaIDs: []string{"f1", "f2", "f3"},
		MontoTotal: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	require.Len(t, resp.Aplicaciones, 3)

	igualPesos(t, 3333, resp.Aplicaciones[0].MontoAplicado)
	igualPesos(t, 3333, resp.Aplicaciones[1].MontoAplicado)
	igualPesos(t, 3334, resp.Aplicaciones[2].MontoAplicado)

	suma := decimal.Zero
	for _, a := range resp.Aplicaciones {
		suma = suma.Add(a.MontoAplicado)
	}
	igualPesos(t, 10000, suma)
	igualPesos(t, 0, resp.SaldoDisponible)
	assert.Equal(t, entity.SaldoAgotado, resp.Estado)
}

// Si el lote repite una factura, la segunda cuota debe plegarse sobre el
// valor ya reducido por la primera: la factura termina reflejando la suma de
// sus filas de aplicación, no solo la última cuota.
func TestSaldo_AplicarLote_FacturaRepetida(t *testing.T) {
	env := newTestEnv()
	uc := settlement.NewSaldoFavorUseCase(env.txRunner, env.saldoRepo, env.invoiceRepo)

	require.NoError(t, env.saldoRepo.Create(saldoActivo("s1", 10000)))
	require.NoError(t, env.invoiceRepo.Create(facturaPendiente("f1")))

	resp, err := uc.AplicarLote(context.Background(), "s1", dto.AplicarSaldoLoteRequest{
		FacturaIDs: []string{"f1", "f1"},
		MontoTotal: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	require.Len(t, resp.Aplicaciones, 2)
	igualPesos(t, 114000, resp.Aplicaciones[0].NuevoValorReal)
	igualPesos(t, 109000, resp.Aplicaciones[1].NuevoValorReal)
	igualPesos(t, 0, resp.SaldoDisponible)

	// 119.000 - 10.000: la reducción completa del lote.
	f1, _ := env.invoiceRepo.GetByID("f1")
	require.True(t, f1.ValorRealAPagar.Valid)
	igualPesos(t, 109000, f1.ValorRealAPagar.Decimal)

	apps, _ := env.saldoRepo.ListAplicaciones("s1")
	require.Len(t, apps, 2)
	suma := decimal.Zero
	for _, a := range apps {
		suma = suma.Add(a.Monto)
	}
	igualPesos(t, 10000, suma)
}

func TestSaldo_ValidacionesDeAplicacion(t *testing.T) {
	env := newTestEnv()
	uc := settlement.NewSaldoFavorUseCase(env.txRunner, env.saldoRepo, env.invoiceRepo)
	ctx := context.Background()

	require.NoError(t, env.saldoRepo.Create(saldoActivo("s1", 50000)))
	require.NoError(t, env.invoiceRepo.Create(facturaPendiente("f1")))

	_, err := uc.Aplicar(ctx, "no-existe", dto.AplicarSaldoRequest{FacturaID: "f1", Monto: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Aplicar(ctx, "s1", dto.AplicarSaldoRequest{FacturaID: "f1", Monto: decimal.NewFromInt(-100)})
	assert.ErrorIs(t, err, domain.ErrMontoInvalido)

	// Más que el disponible del saldo.
	_, err = uc.Aplicar(ctx, "s1", dto.AplicarSaldoRequest{FacturaID: "f1", Monto: decimal.NewFromInt(60000)})
	assert.ErrorIs(t, err, domain.ErrSaldoInsuficiente)

	// Más que el pendiente de la factura (pendiente 119.000, saldo grande).
	require.NoError(t, env.saldoRepo.Create(saldoActivo("s2", 500000)))
	_, err = uc.Aplicar(ctx, "s2", dto.AplicarSaldoRequest{FacturaID: "f1", Monto: decimal.NewFromInt(200000)})
	assert.ErrorIs(t, err, domain.ErrMontoExcedeFactura)

	// Factura ya pagada.
	pagada := facturaPendiente("f-pagada")
	pagada.EstadoMercancia = entity.EstadoMercanciaPagada
	require.NoError(t, env.invoiceRepo.Create(pagada))
	_, err = uc.Aplicar(ctx, "s1", dto.AplicarSaldoRequest{FacturaID: "f-pagada", Monto: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, domain.ErrFacturaYaPagada)

	// Nada de lo anterior tocó el saldo.
	s, _ := env.saldoRepo.GetByID("s1")
	igualPesos(t, 50000, s.SaldoDisponible)
	apps, _ := env.saldoRepo.ListAplicaciones("s1")
	assert.Empty(t, apps)
}

func TestSaldo_Anular(t *testing.T) {
	env := newTestEnv()
	uc := settlement.NewSaldoFavorUseCase(env.txRunner, env.saldoRepo, env.invoiceRepo)
	ctx := context.Background()

	require.NoError(t, env.saldoRepo.Create(saldoActivo("s1", 50000)))
	require.NoError(t, env.invoiceRepo.Create(facturaPendiente("f1")))

	require.NoError(t, uc.Anular(ctx, "s1"))

	s, _ := env.saldoRepo.GetByID("s1")
	assert.Equal(t, entity.SaldoAnulado, s.Estado)

	_, err := uc.Aplicar(ctx, "s1", dto.AplicarSaldoRequest{FacturaID: "f1", Monto: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, domain.ErrSaldoNoDisponible, "saldo anulado no se aplica")

	err = uc.Anular(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSaldoNoDisponible, "anular es terminal, no repetible")
}
