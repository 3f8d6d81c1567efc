// Package cache guarda respuestas ya renderizadas de las vistas del dashboard y las
// invalida por ruta cuando una mutación cambia los datos que muestran.
package cache

import (
	"context"
	"strings"
	"time"
)

// Entry respuesta cacheada.
type Entry struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ViewCache almacén de vistas. Las claves son "ruta" o "ruta?query".
type ViewCache interface {
	// Get devuelve (nil, nil) en un fallo de caché.
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	// Revalidate descarta toda vista bajo path: la propia ruta, sus subrutas y sus variantes con query.
	Revalidate(ctx context.Context, path string) error
}

// Key construye la clave de una vista.
func Key(path, rawQuery string) string {
	path = normalizePath(path)
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// underPath indica si la clave pertenece a path.
func underPath(key, path string) bool {
	path = normalizePath(path)
	if i := strings.IndexByte(key, '?'); i >= 0 {
		key = key[:i]
	}
	if path == "/" {
		return true
	}
	return key == path || strings.HasPrefix(key, path+"/")
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
