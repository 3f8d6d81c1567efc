package cache

import (
	"context"

	"github.com/jhoicas/dashboard-facturas/pkg/config"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
)

// New elige backend: Redis si cfg.Addr está definido, memoria en otro caso.
// Si Redis no responde se cae a memoria y se registra el aviso.
func New(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) ViewCache {
	if !cfg.Enabled() {
		return NewMemoryViewCache()
	}
	rc, err := NewRedisViewCache(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("view cache: redis no disponible, usando memoria")
		return NewMemoryViewCache()
	}
	log.Info().Str("addr", cfg.Addr).Msg("view cache: redis")
	return rc
}
