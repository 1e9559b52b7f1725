package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pagos-api/internal/domain"
	"github.com/jhoicas/pagos-api/internal/domain/settlement"
)

func TestValidarPagoPartido_SumaExacta(t *testing.T) {
	err := settlement.ValidarPagoPartido(decimal.NewFromInt(70000), []settlement.LineaPago{
		{MedioPago: "banco", Monto: decimal.NewFromInt(40000)},
		{MedioPago: "efectivo", Monto: decimal.NewFromInt(30000)},
	})
	assert.NoError(t, err)
}

// La tolerancia es estricta: diferencias >= 1 peso se rechazan, menores a 1
// peso (redondeos intermedios) se aceptan.
func TestValidarPagoPartido_Tolerancia(t *testing.T) {
	objetivo := decimal.NewFromInt(70000)

	err := settlement.ValidarPagoPartido(objetivo, []settlement.LineaPago{
		{MedioPago: "banco", Monto: decimal.NewFromInt(40000)},
		{MedioPago: "efectivo", Monto: decimal.NewFromInt(29500)},
	})
	assert.ErrorIs(t, err, domain.ErrSumaPagoNoCoincide, "diferencia de 500 pesos se rechaza")

	err = settlement.ValidarPagoPartido(objetivo, []settlement.LineaPago{
		{MedioPago: "banco", Monto: decimal.NewFromInt(40000)},
		{MedioPago: "efectivo", Monto: decimal.NewFromFloat(29999.5)},
	})
	assert.NoError(t, err, "diferencia de 0,5 pesos (redondeo) se acepta")

	err = settlement.ValidarPagoPartido(objetivo, []settlement.LineaPago{
		{MedioPago: "banco", Monto: decimal.NewFromInt(40000)},
		{MedioPago: "efectivo", Monto: decimal.NewFromInt(30001)},
	})
	assert.ErrorIs(t, err, domain.ErrSumaPagoNoCoincide, "diferencia de exactamente 1 peso se rechaza")
}

func TestValidarPagoPartido_LineasInvalidas(t *testing.T) {
	objetivo := decimal.NewFromInt(1000)

	err := settlement.ValidarPagoPartido(objetivo, nil)
	assert.ErrorIs(t, err, domain.ErrPagoPartidoInvalido, "sin líneas")

	err = settlement.ValidarPagoPartido(objetivo, []settlement.LineaPago{
		{MedioPago: "", Monto: decimal.NewFromInt(1000)},
	})
	assert.ErrorIs(t, err, domain.ErrPagoPartidoInvalido, "canal vacío")

	err = settlement.ValidarPagoPartido(objetivo, []settlement.LineaPago{
		{MedioPago: "banco", Monto: decimal.Zero},
	})
	assert.ErrorIs(t, err, domain.ErrPagoPartidoInvalido, "monto cero")

	err = settlement.ValidarPagoPartido(objetivo, []settlement.LineaPago{
		{MedioPago: "banco", Monto: decimal.NewFromInt(-500)},
		{MedioPago: "efectivo", Monto: decimal.NewFromInt(1500)},
	})
	assert.ErrorIs(t, err, domain.ErrPagoPartidoInvalido, "monto negativo")
}

func TestValidarPagoPartido_UnaSolaLinea(t *testing.T) {
	err := settlement.ValidarPagoPartido(decimal.NewFromInt(116500), []settlement.LineaPago{
		{MedioPago: "transferencia", Monto: decimal.NewFromInt(116500)},
	})
	assert.NoError(t, err)
}
