package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dashboard-facturas/internal/application/billing"
)

// CustomerHandler maneja las lecturas de clientes (protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Table clientes filtrados con totales por cliente.
// GET /api/dashboard/customers?query=
func (h *CustomerHandler) Table(c *fiber.Ctx) error {
	out, err := h.uc.FetchFilteredCustomers(c.Context(), c.Query("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Options id y nombre de todos los clientes, para selectores.
// GET /api/customers
func (h *CustomerHandler) Options(c *fiber.Ctx) error {
	out, err := h.uc.FetchCustomers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
