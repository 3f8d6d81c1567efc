package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
)

// CustomerField par id/nombre para poblar selectores.
type CustomerField struct {
	ID   string
	Name string
}

// CustomerSummaryRow cliente con totales agregados de sus facturas.
type CustomerSummaryRow struct {
	ID            string
	Name          string
	Email         string
	ImageURL      string
	TotalInvoices int64
	TotalPending  decimal.Decimal // centavos
	TotalPaid     decimal.Decimal // centavos
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Count(ctx context.Context) (int64, error)
	// ListFields devuelve todos los clientes ordenados por nombre.
	ListFields(ctx context.Context) ([]CustomerField, error)
	Exists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// SearchSummaries incluye clientes sin facturas con totales en cero.
	SearchSummaries(ctx context.Context, query string) ([]CustomerSummaryRow, error)
	Create(ctx context.Context, customer *entity.Customer) error
}
