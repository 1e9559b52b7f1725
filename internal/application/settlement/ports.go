package settlement

import (
	"context"

	"github.com/jhoicas/pagos-api/internal/domain/repository"
)

// TxRunner ejecuta una función con repos atados a UNA transacción del
// almacén. Es el envoltorio que cierra las ventanas de estado parcial del
// motor: la aplicación de una nota crédito (dos facturas actualizadas), la
// aplicación de un saldo (decremento + aplicación + factura) y la
// liquidación de una factura (factura + líneas de pago) se confirman o se
// revierten completas.
type TxRunner interface {
	RunSettlement(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		saldoRepo repository.SaldoFavorRepository,
		pagoRepo repository.PagoRepository,
	) error) error
}
