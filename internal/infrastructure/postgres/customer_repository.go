package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Count total de clientes.
func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// ListFields id y nombre de todos los clientes, ordenados por nombre.
func (r *CustomerRepo) ListFields(ctx context.Context) ([]repository.CustomerField, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM customers ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []repository.CustomerField
	for rows.Next() {
		var f repository.CustomerField
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Exists indica si el cliente existe.
func (r *CustomerRepo) Exists(ctx context.Context, id string) (bool, error) {
	id, ok := parseID(id)
	if !ok {
		return false, nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("customer exists: %w", err)
	}
	return exists, nil
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var c entity.Customer
	err := r.q.QueryRow(ctx, `SELECT id, name, email, image_url FROM customers WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// SearchSummaries filtra por nombre o email y agrega los totales de facturas de cada cliente.
// El LEFT JOIN conserva a los clientes sin facturas con totales en cero.
func (r *CustomerRepo) SearchSummaries(ctx context.Context, query string) ([]repository.CustomerSummaryRow, error) {
	const sql = `
		SELECT
		    c.id, c.name, c.email, c.image_url,
		    COUNT(i.id)                                                               AS total_invoices,
		    COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0)::numeric AS total_pending,
		    COALESCE(SUM(CASE WHEN i.status = 'paid'    THEN i.amount ELSE 0 END), 0)::numeric AS total_paid
		FROM customers c
		LEFT JOIN invoices i ON i.customer_id = c.id
		WHERE c.name  ILIKE $1 ESCAPE '\'
		   OR c.email ILIKE $1 ESCAPE '\'
		GROUP BY c.id, c.name, c.email, c.image_url
		ORDER BY c.name ASC`
	rows, err := r.q.Query(ctx, sql, containsPattern(query))
	if err != nil {
		return nil, fmt.Errorf("search customer summaries: %w", err)
	}
	defer rows.Close()

	var list []repository.CustomerSummaryRow
	for rows.Next() {
		var s repository.CustomerSummaryRow
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.ImageURL,
			&s.TotalInvoices, &s.TotalPending, &s.TotalPaid); err != nil {
			return nil, fmt.Errorf("scan customer summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Create persiste un cliente (usado por el seeder). Ignora duplicados por id.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	const query = `
		INSERT INTO customers (id, name, email, image_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, customer.ID, customer.Name, customer.Email, customer.ImageURL); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}
