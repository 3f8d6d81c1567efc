package repository

import (
	"context"

	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	// GetByEmail busca por coincidencia exacta; (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
