package postgres

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/dashboard-facturas/pkg/config"
)

var _ Querier = (*LazyPool)(nil)

// Connector abre el pool real.
type Connector func(ctx context.Context) (*pgxpool.Pool, error)

// LazyPool handle compartido del proceso: el primer uso abre la conexión y todos los
// siguientes reutilizan el mismo *pgxpool.Pool. Un intento fallido no queda cacheado.
type LazyPool struct {
	connect Connector

	mu   sync.Mutex
	pool atomic.Pointer[pgxpool.Pool]
}

// NewLazyPool construye el handle perezoso a partir de la configuración de la app.
func NewLazyPool(cfg config.DBConfig) *LazyPool {
	return NewLazyPoolWith(func(ctx context.Context) (*pgxpool.Pool, error) {
		return NewPool(ctx, cfg)
	})
}

// NewLazyPoolWith permite inyectar la función de conexión.
func NewLazyPoolWith(connect Connector) *LazyPool {
	return &LazyPool{connect: connect}
}

// Pool devuelve el pool, conectando en la primera llamada.
func (l *LazyPool) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if p := l.pool.Load(); p != nil {
		return p, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if p := l.pool.Load(); p != nil {
		return p, nil
	}
	p, err := l.connect(ctx)
	if err != nil {
		return nil, err
	}
	l.pool.Store(p)
	return p, nil
}

// Exec implementa Querier.
func (l *LazyPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p, err := l.Pool(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return p.Exec(ctx, sql, args...)
}

// Query implementa Querier.
func (l *LazyPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	p, err := l.Pool(ctx)
	if err != nil {
		return nil, err
	}
	return p.Query(ctx, sql, args...)
}

// QueryRow implementa Querier. El error de conexión se entrega en Scan.
func (l *LazyPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	p, err := l.Pool(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return p.QueryRow(ctx, sql, args...)
}

// Close libera el pool si llegó a abrirse.
func (l *LazyPool) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p := l.pool.Swap(nil); p != nil {
		p.Close()
	}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
