package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
)

// DatabaseError envuelve un fallo de almacenamiento. Error() devuelve solo el mensaje
// genérico apto para el usuario; la causa queda accesible con errors.Unwrap para logs.
type DatabaseError struct {
	Op      string // operación, p.ej. "fetchRevenue"
	Message string // mensaje genérico, p.ej. "Failed to fetch revenue data."
	Err     error
}

func (e *DatabaseError) Error() string {
	if e.Message == "" {
		return "Database Error."
	}
	return "Database Error: " + e.Message
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabaseError construye un DatabaseError.
func NewDatabaseError(op, message string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Message: message, Err: err}
}

// IsDatabaseError indica si err (o alguno de sus envueltos) es un DatabaseError.
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}
