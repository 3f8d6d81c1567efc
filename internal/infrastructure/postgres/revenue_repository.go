package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
)

var _ repository.RevenueRepository = (*RevenueRepo)(nil)

// RevenueRepo lectura de la tabla de ingresos mensuales.
type RevenueRepo struct {
	q Querier
}

// NewRevenueRepository construye el adaptador.
func NewRevenueRepository(q Querier) *RevenueRepo {
	return &RevenueRepo{q: q}
}

// List devuelve todos los meses. El orden cronológico lo aplica el caso de uso.
func (r *RevenueRepo) List(ctx context.Context) ([]entity.Revenue, error) {
	rows, err := r.q.Query(ctx, `SELECT month, revenue FROM revenue`)
	if err != nil {
		return nil, fmt.Errorf("list revenue: %w", err)
	}
	defer rows.Close()
	var list []entity.Revenue
	for rows.Next() {
		var rev entity.Revenue
		if err := rows.Scan(&rev.Month, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza el ingreso de un mes.
func (r *RevenueRepo) Upsert(ctx context.Context, rev entity.Revenue) error {
	const query = `
		INSERT INTO revenue (month, revenue) VALUES ($1, $2)
		ON CONFLICT (month) DO UPDATE SET revenue = EXCLUDED.revenue`
	if _, err := r.q.Exec(ctx, query, rev.Month, rev.Revenue); err != nil {
		return fmt.Errorf("upsert revenue: %w", err)
	}
	return nil
}
