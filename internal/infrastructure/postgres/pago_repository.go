package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/pagos-api/internal/domain/entity"
	"github.com/jhoicas/pagos-api/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación de PagoRepository sobre split_payment_lines
// (usable con pool o tx).
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// CreateDetalle persiste una línea de pago (canal, monto).
func (r *PagoRepo) CreateDetalle(p *entity.PagoDetalle) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO split_payment_lines (id, factura_id, medio_pago, monto, fecha)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.FacturaID, p.MedioPago, p.Monto, p.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert linea de pago: %w", err)
	}
	return nil
}

// ListByFactura lista las líneas de pago de una factura.
func (r *PagoRepo) ListByFactura(facturaID string) ([]*entity.PagoDetalle, error) {
	query := `
		SELECT id, factura_id, medio_pago, monto, fecha
		FROM split_payment_lines WHERE factura_id = $1 ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, facturaID)
	if err != nil {
		return nil, fmt.Errorf("list lineas de pago: %w", err)
	}
	defer rows.Close()

	var list []*entity.PagoDetalle
	for rows.Next() {
		var p entity.PagoDetalle
		if err := rows.Scan(&p.ID, &p.FacturaID, &p.MedioPago, &p.Monto, &p.Fecha); err != nil {
			return nil, fmt.Errorf("scan linea de pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
