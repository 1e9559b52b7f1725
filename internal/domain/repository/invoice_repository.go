package repository

import "github.com/jhoicas/pagos-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas de
// proveedor y notas crédito (misma tabla, discriminadas por tipo).
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// List filtra por NIT de proveedor y/o estado de mercancía; parámetros
	// vacíos no filtran.
	List(proveedorNIT, estadoMercancia string, limit, offset int) ([]*entity.Invoice, error)
	// UpdateTotales persiste los campos que muta el motor de liquidación:
	// total_a_pagar, factura_iva, total_sin_iva, valor_real_a_pagar, tipo,
	// estado_mercancia, estado_nota_credito, metodo_pago, fecha_pago,
	// uso_pronto_pago, factura_origen_id y el ledger (notas).
	UpdateTotales(inv *entity.Invoice) error
}
