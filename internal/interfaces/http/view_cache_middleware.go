package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dashboard-facturas/internal/infrastructure/cache"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
)

// HeaderViewCache indica si la respuesta salió de la caché (HIT) o se generó (MISS).
const HeaderViewCache = "X-View-Cache"

// ViewCacheMiddleware sirve GET desde la caché de vistas y guarda las respuestas 200.
// La clave es la ruta de la vista (sin el prefijo /api) más la query, de modo que
// Revalidate("/dashboard/invoices") alcanza a /api/dashboard/invoices y sus subrutas.
func ViewCacheMiddleware(vc cache.ViewCache, ttl time.Duration, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		if vc == nil || ttl <= 0 || c.Method() != fiber.MethodGet {
			return c.Next()
		}
		key := cache.Key(viewPath(c.Path()), string(c.Request().URI().QueryString()))

		entry, err := vc.Get(c.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("view cache: get")
		}
		if entry != nil {
			c.Set(HeaderViewCache, "HIT")
			c.Set(fiber.HeaderContentType, entry.ContentType)
			return c.Send(entry.Body)
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		c.Set(HeaderViewCache, "MISS")
		e := cache.Entry{
			ContentType: string(c.Response().Header.ContentType()),
			Body:        c.Response().Body(),
		}
		if err := vc.Set(c.Context(), key, e, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("view cache: set")
		}
		return nil
	}
}

func viewPath(p string) string {
	if strings.HasPrefix(p, "/api/") {
		return strings.TrimPrefix(p, "/api")
	}
	return p
}
