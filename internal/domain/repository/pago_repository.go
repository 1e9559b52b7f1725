package repository

import "github.com/jhoicas/pagos-api/internal/domain/entity"

// PagoRepository define el puerto de persistencia para las líneas de pago
// (split_payment_lines).
type PagoRepository interface {
	CreateDetalle(p *entity.PagoDetalle) error
	ListByFactura(facturaID string) ([]*entity.PagoDetalle, error)
}
