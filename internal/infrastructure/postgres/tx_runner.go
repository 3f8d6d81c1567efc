package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Users     repository.UserRepository
	Customers repository.CustomerRepository
	Invoices  repository.InvoiceRepository
	Revenue   repository.RevenueRepository
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *LazyPool
}

// NewTxRunner construye el runner sobre el pool compartido.
func NewTxRunner(pool *LazyPool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos TxRepos) error) error {
	pool, err := r.pool.Pool(ctx)
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := TxRepos{
		Users:     NewUserRepository(tx),
		Customers: NewCustomerRepository(tx),
		Invoices:  NewInvoiceRepository(tx),
		Revenue:   NewRevenueRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
