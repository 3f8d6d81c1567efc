package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dashboard-facturas/pkg/jwt"
)

// SessionCookie cookie con el token de sesión para clientes de navegador.
const SessionCookie = "session"

// Locals keys para UserID y Email en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// AuthMiddleware valida el token JWT (Bearer o cookie de sesión) y extrae UserID y Email a c.Locals.
// El header Authorization tiene prioridad sobre la cookie. Los rechazos son domain.ErrUnauthorized (401).
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return writeError(c, unauthorized("INVALID_TOKEN", "formato: Bearer <token>"))
		}
		if tokenString == "" {
			tokenString = c.Cookies(SessionCookie)
		}
		if tokenString == "" {
			return writeError(c, unauthorized("MISSING_TOKEN", "sesión requerida"))
		}
		userID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return writeError(c, unauthorized("INVALID_TOKEN", "token inválido o expirado"))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// bearerToken devuelve ("", true) si no hay header y (_, false) si el header está mal formado.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", true
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email de la sesión (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
