package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// ErrUnknownCustomer la factura referencia un cliente que no existe (violación de FK).
var ErrUnknownCustomer = fmt.Errorf("cliente inexistente: %w", domain.ErrInvalidInput)

// invoiceSearchFrom une facturas con su cliente y filtra por query literal en $1.
const invoiceSearchFrom = `
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id
	WHERE c.name         ILIKE $1 ESCAPE '\'
	   OR c.email        ILIKE $1 ESCAPE '\'
	   OR i.amount::text ILIKE $1 ESCAPE '\'
	   OR i.date::text   ILIKE $1 ESCAPE '\'
	   OR i.status       ILIKE $1 ESCAPE '\'`

// InvoiceRepo implementación de InvoiceRepository (usable con pool, tx o LazyPool).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// LatestInvoices devuelve las últimas facturas por fecha con nombre, email e imagen del cliente.
func (r *InvoiceRepo) LatestInvoices(ctx context.Context, limit int) ([]repository.LatestInvoiceRow, error) {
	const query = `
		SELECT i.id, i.amount, c.name, c.email, c.image_url
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.date DESC, i.id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("latest invoices: %w", err)
	}
	defer rows.Close()

	var list []repository.LatestInvoiceRow
	for rows.Next() {
		var row repository.LatestInvoiceRow
		if err := rows.Scan(&row.ID, &row.Amount, &row.Name, &row.Email, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("scan latest invoice: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountInvoices total de facturas.
func (r *InvoiceRepo) CountInvoices(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// SumByStatus suma en una sola pasada para que ninguna factura quede contada en ambos totales.
func (r *InvoiceRepo) SumByStatus(ctx context.Context) (paid, pending decimal.Decimal, err error) {
	const query = `
		SELECT
		    COALESCE(SUM(CASE WHEN status = 'paid'    THEN amount ELSE 0 END), 0)::numeric AS paid,
		    COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)::numeric AS pending
		FROM invoices`
	if err = r.q.QueryRow(ctx, query).Scan(&paid, &pending); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum invoices by status: %w", err)
	}
	return paid, pending, nil
}

// Search listado filtrado y paginado, ordenado por fecha descendente.
func (r *InvoiceRepo) Search(ctx context.Context, query string, limit, offset int) ([]repository.InvoiceTableRow, error) {
	sql := `
		SELECT i.id, i.customer_id, c.name, c.email, c.image_url, i.date, i.amount, i.status` +
		invoiceSearchFrom + `
		ORDER BY i.date DESC, i.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, sql, containsPattern(query), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}
	defer rows.Close()

	var list []repository.InvoiceTableRow
	for rows.Next() {
		var row repository.InvoiceTableRow
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Name, &row.Email, &row.ImageURL,
			&row.Date, &row.Amount, &row.Status); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountSearch número de facturas que coinciden con query.
func (r *InvoiceRepo) CountSearch(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+invoiceSearchFrom, containsPattern(query)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoice search: %w", err)
	}
	return n, nil
}

// GetByID obtiene una factura por ID. (nil, nil) si no existe o el id no es un UUID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	const query = `SELECT id, customer_id, amount, status, date FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, id).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &inv.Status, &inv.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// Create persiste una factura nueva; asigna ID si viene vacío.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, invoice.ID, invoice.CustomerID, invoice.Amount, invoice.Status, invoice.Date)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUnknownCustomer
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update reemplaza customer_id, amount y status. Un id inexistente devuelve domain.ErrNotFound.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	id, ok := parseID(invoice.ID)
	if !ok {
		return domain.ErrNotFound
	}
	const query = `
		UPDATE invoices
		SET customer_id = $2, amount = $3, status = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, invoice.CustomerID, invoice.Amount, invoice.Status)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUnknownCustomer
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una factura por ID. Borrar un id inexistente no es error.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	id, ok := parseID(id)
	if !ok {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
