package repository

import (
	"context"

	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
)

// RevenueRepository puerto de lectura de ingresos mensuales.
type RevenueRepository interface {
	List(ctx context.Context) ([]entity.Revenue, error)
	Upsert(ctx context.Context, r entity.Revenue) error
}
