package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
)

// LatestInvoiceRow factura reciente unida a los datos visibles de su cliente.
type LatestInvoiceRow struct {
	ID       string
	Amount   int64 // centavos
	Name     string
	Email    string
	ImageURL string
}

// InvoiceTableRow fila del listado filtrado de facturas.
type InvoiceTableRow struct {
	ID         string
	CustomerID string
	Name       string
	Email      string
	ImageURL   string
	Date       time.Time
	Amount     int64 // centavos
	Status     string
}

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	// LatestInvoices devuelve las `limit` facturas más recientes (fecha desc, id desc) con su cliente.
	LatestInvoices(ctx context.Context, limit int) ([]LatestInvoiceRow, error)
	CountInvoices(ctx context.Context) (int64, error)
	// SumByStatus suma montos (centavos) de facturas pagadas y pendientes. Sin filas devuelve cero.
	SumByStatus(ctx context.Context) (paid, pending decimal.Decimal, err error)
	// Search filtra por nombre/email del cliente, monto, fecha o estado, tratando query como texto literal.
	Search(ctx context.Context, query string, limit, offset int) ([]InvoiceTableRow, error)
	CountSearch(ctx context.Context, query string) (int64, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update reemplaza cliente, monto y estado. La fecha no se toca.
	Update(ctx context.Context, invoice *entity.Invoice) error
	// Delete es idempotente: borrar un id inexistente no es error.
	Delete(ctx context.Context, id string) error
}
