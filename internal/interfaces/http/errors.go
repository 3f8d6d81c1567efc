package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
)

// authError rechazo de AuthMiddleware con su código; es un domain.ErrUnauthorized.
type authError struct {
	code    string
	message string
}

func (e *authError) Error() string { return e.message }
func (e *authError) Unwrap() error { return domain.ErrUnauthorized }

func unauthorized(code, message string) error {
	return &authError{code: code, message: message}
}

// writeError traduce errores de lectura a respuestas HTTP. Nunca expone la causa de un
// fallo de almacenamiento: solo el mensaje genérico del DatabaseError.
func writeError(c *fiber.Ctx, err error) error {
	var dbErr *domain.DatabaseError
	var authErr *authError
	switch {
	case errors.As(err, &authErr):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: authErr.code, Message: authErr.message})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.As(err, &dbErr):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "DATABASE_ERROR", Message: dbErr.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "la petición fue cancelada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "Something went wrong."})
	}
}
