package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pagos-api/internal/domain"
	"github.com/jhoicas/pagos-api/internal/domain/entity"
	"github.com/jhoicas/pagos-api/internal/domain/repository"
)

var _ repository.SaldoFavorRepository = (*SaldoFavorRepo)(nil)

// SaldoFavorRepo implementación de SaldoFavorRepository (usable con pool o tx).
type SaldoFavorRepo struct {
	q Querier
}

// NewSaldoFavorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaldoFavorRepository(q Querier) *SaldoFavorRepo {
	return &SaldoFavorRepo{q: q}
}

const saldoColumns = `
	id, proveedor_nit, proveedor_nombre, monto_inicial, saldo_disponible,
	motivo, medio_pago, estado, created_at, updated_at`

// Create persiste un saldo a favor nuevo (disponible = monto inicial).
func (r *SaldoFavorRepo) Create(s *entity.SaldoFavor) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO balance_entries (` + saldoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ProveedorNIT, s.ProveedorNombre, s.MontoInicial, s.SaldoDisponible,
		s.Motivo, nullIfEmpty(s.MedioPago), s.Estado, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert saldo: %w", err)
	}
	return nil
}

// GetByID obtiene un saldo por ID. Devuelve (nil, nil) si no existe.
func (r *SaldoFavorRepo) GetByID(id string) (*entity.SaldoFavor, error) {
	query := `SELECT ` + saldoColumns + ` FROM balance_entries WHERE id = $1`
	s, err := scanSaldo(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get saldo: %w", err)
	}
	return s, nil
}

// ListDisponibles devuelve los saldos activos con disponible > 0 del
// proveedor; NIT vacío lista todos.
func (r *SaldoFavorRepo) ListDisponibles(proveedorNIT string) ([]*entity.SaldoFavor, error) {
	query := `
		SELECT ` + saldoColumns + `
		FROM balance_entries
		WHERE estado = $1 AND saldo_disponible > 0`
	args := []any{entity.SaldoActivo}
	if proveedorNIT != "" {
		args = append(args, proveedorNIT)
		query += fmt.Sprintf(" AND proveedor_nit = $%d", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list saldos: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaldoFavor
	for rows.Next() {
		s, err := scanSaldo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saldo: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ApplyBalanceFavor descuenta monto del disponible e inserta la aplicación en
// una sola operación atómica. El UPDATE está guardado por estado = activo y
// saldo_disponible >= monto: dos aplicaciones concurrentes del mismo saldo se
// serializan en la fila y nunca dejan el disponible negativo. Si el
// disponible llega a cero, el saldo pasa a agotado en el mismo UPDATE.
func (r *SaldoFavorRepo) ApplyBalanceFavor(saldoID, facturaID string, monto decimal.Decimal) (*entity.SaldoFavor, error) {
	query := `
		UPDATE balance_entries
		SET saldo_disponible = saldo_disponible - $2,
		    estado = CASE WHEN saldo_disponible - $2 <= 0 THEN $3 ELSE estado END,
		    updated_at = $4
		WHERE id = $1 AND estado = $5 AND saldo_disponible >= $2
		RETURNING ` + saldoColumns
	s, err := scanSaldo(r.q.QueryRow(context.Background(), query,
		saldoID, monto, entity.SaldoAgotado, time.Now(), entity.SaldoActivo,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.diagnoseApplyFailure(saldoID, monto)
		}
		return nil, fmt.Errorf("apply saldo: %w", err)
	}

	app := &entity.SaldoAplicacion{
		ID:        uuid.New().String(),
		SaldoID:   saldoID,
		FacturaID: facturaID,
		Monto:     monto,
		Fecha:     time.Now(),
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO balance_applications (id, saldo_id, factura_id, monto, fecha)
		VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.SaldoID, app.FacturaID, app.Monto, app.Fecha,
	)
	if err != nil {
		return nil, fmt.Errorf("insert aplicacion: %w", err)
	}
	return s, nil
}

// diagnoseApplyFailure distingue por qué no se afectó la fila: saldo
// inexistente, no activo, o disponible insuficiente.
func (r *SaldoFavorRepo) diagnoseApplyFailure(saldoID string, monto decimal.Decimal) error {
	s, err := r.GetByID(saldoID)
	if err != nil {
		return err
	}
	switch {
	case s == nil:
		return domain.ErrNotFound
	case s.Estado != entity.SaldoActivo:
		return domain.ErrSaldoNoDisponible
	case s.SaldoDisponible.LessThan(monto):
		return domain.ErrSaldoInsuficiente
	default:
		return domain.ErrConflict
	}
}

// Anular marca un saldo activo como anulado (terminal).
func (r *SaldoFavorRepo) Anular(id string) error {
	query := `
		UPDATE balance_entries
		SET estado = $2, updated_at = $3
		WHERE id = $1 AND estado = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.SaldoAnulado, time.Now(), entity.SaldoActivo,
	)
	if err != nil {
		return fmt.Errorf("anular saldo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		s, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		return domain.ErrSaldoNoDisponible
	}
	return nil
}

// ListAplicaciones lista las aplicaciones de un saldo en orden cronológico.
func (r *SaldoFavorRepo) ListAplicaciones(saldoID string) ([]*entity.SaldoAplicacion, error) {
	return r.listAplicaciones("saldo_id", saldoID)
}

// ListAplicacionesByFactura lista las aplicaciones recibidas por una factura.
func (r *SaldoFavorRepo) ListAplicacionesByFactura(facturaID string) ([]*entity.SaldoAplicacion, error) {
	return r.listAplicaciones("factura_id", facturaID)
}

func (r *SaldoFavorRepo) listAplicaciones(column, value string) ([]*entity.SaldoAplicacion, error) {
	query := fmt.Sprintf(`
		SELECT id, saldo_id, factura_id, monto, fecha
		FROM balance_applications WHERE %s = $1 ORDER BY fecha`, column)
	rows, err := r.q.Query(context.Background(), query, value)
	if err != nil {
		return nil, fmt.Errorf("list aplicaciones: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaldoAplicacion
	for rows.Next() {
		var a entity.SaldoAplicacion
		if err := rows.Scan(&a.ID, &a.SaldoID, &a.FacturaID, &a.Monto, &a.Fecha); err != nil {
			return nil, fmt.Errorf("scan aplicacion: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func scanSaldo(row pgx.Row) (*entity.SaldoFavor, error) {
	var s entity.SaldoFavor
	var medioPago *string
	err := row.Scan(
		&s.ID, &s.ProveedorNIT, &s.ProveedorNombre, &s.MontoInicial, &s.SaldoDisponible,
		&s.Motivo, &medioPago, &s.Estado, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.MedioPago = derefStr(medioPago)
	return &s, nil
}
