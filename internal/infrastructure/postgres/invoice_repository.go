package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pagos-api/internal/domain"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
	"github.com/jhoicas/pagos-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, numero_factura, proveedor_nit, proveedor_nombre, tipo, fecha,
	total_a_pagar, factura_iva, factura_iva_porcentaje, total_sin_iva,
	tiene_retencion, monto_retencion, porcentaje_pronto_pago, uso_pronto_pago,
	descuentos_antes_iva, valor_real_a_pagar,
	estado_mercancia, estado_nota_credito, metodo_pago, fecha_pago,
	factura_origen_id, notas, created_at, updated_at`

// Create persiste la factura (o nota crédito).
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	descuentos, err := json.Marshal(inv.DescuentosAntesIVA)
	if err != nil {
		return fmt.Errorf("marshal descuentos: %w", err)
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err = r.q.Exec(context.Background(), query,
		inv.ID, inv.NumeroFactura, inv.ProveedorNIT, inv.ProveedorNombre, inv.Tipo, inv.Fecha,
		inv.TotalAPagar, inv.FacturaIVA, inv.FacturaIVAPorcentaje, inv.TotalSinIVA,
		inv.TieneRetencion, inv.MontoRetencion, inv.PorcentajeProntoPago, inv.UsoProntoPago,
		descuentos, inv.ValorRealAPagar,
		inv.EstadoMercancia, nullIfEmpty(inv.EstadoNotaCredito), nullIfEmpty(inv.MetodoPago), inv.FechaPago,
		nullIfEmpty(inv.FacturaOrigenID), nullIfEmpty(inv.Notas),
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List filtra por NIT y/o estado de mercancía; parámetros vacíos no filtran.
func (r *InvoiceRepo) List(proveedorNIT, estadoMercancia string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}
	if proveedorNIT != "" {
		args = append(args, proveedorNIT)
		query += fmt.Sprintf(" AND proveedor_nit = $%d", len(args))
	}
	if estadoMercancia != "" {
		args = append(args, estadoMercancia)
		query += fmt.Sprintf(" AND estado_mercancia = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY fecha DESC, created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateTotales persiste los campos que muta el motor de liquidación.
func (r *InvoiceRepo) UpdateTotales(inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET total_a_pagar       = $2,
		    factura_iva         = $3,
		    total_sin_iva       = $4,
		    valor_real_a_pagar  = $5,
		    tipo                = $6,
		    estado_mercancia    = $7,
		    estado_nota_credito = $8,
		    metodo_pago         = $9,
		    fecha_pago          = $10,
		    uso_pronto_pago     = $11,
		    factura_origen_id   = $12,
		    notas               = $13,
		    updated_at          = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		inv.ID,
		inv.TotalAPagar, inv.FacturaIVA, inv.TotalSinIVA, inv.ValorRealAPagar,
		inv.Tipo, inv.EstadoMercancia, nullIfEmpty(inv.EstadoNotaCredito),
		nullIfEmpty(inv.MetodoPago), inv.FechaPago,
		inv.UsoProntoPago, nullIfEmpty(inv.FacturaOrigenID), nullIfEmpty(inv.Notas),
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanInvoice escanea una fila con invoiceColumns en el orden declarado.
func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var descuentos []byte
	var estadoNC, metodoPago, facturaOrigenID, notas *string
	err := row.Scan(
		&inv.ID, &inv.NumeroFactura, &inv.ProveedorNIT, &inv.ProveedorNombre, &inv.Tipo, &inv.Fecha,
		&inv.TotalAPagar, &inv.FacturaIVA, &inv.FacturaIVAPorcentaje, &inv.TotalSinIVA,
		&inv.TieneRetencion, &inv.MontoRetencion, &inv.PorcentajeProntoPago, &inv.UsoProntoPago,
		&descuentos, &inv.ValorRealAPagar,
		&inv.EstadoMercancia, &estadoNC, &metodoPago, &inv.FechaPago,
		&facturaOrigenID, &notas, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(descuentos) > 0 {
		if err := json.Unmarshal(descuentos, &inv.DescuentosAntesIVA); err != nil {
			return nil, fmt.Errorf("unmarshal descuentos: %w", err)
		}
	}
	inv.EstadoNotaCredito = derefStr(estadoNC)
	inv.MetodoPago = derefStr(metodoPago)
	inv.FacturaOrigenID = derefStr(facturaOrigenID)
	inv.Notas = derefStr(notas)
	return &inv, nil
}
