package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/dashboard-facturas/internal/application/analytics"
)

// DashboardHandler maneja los endpoints de la página principal del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview devuelve gráfico de ingresos, últimas facturas y tarjetas en una sola respuesta.
// GET /api/dashboard
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.GetOverview(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Revenue GET /api/dashboard/revenue
func (h *DashboardHandler) Revenue(c *fiber.Ctx) error {
	out, err := h.uc.FetchRevenue(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LatestInvoices GET /api/dashboard/latest-invoices
func (h *DashboardHandler) LatestInvoices(c *fiber.Ctx) error {
	out, err := h.uc.FetchLatestInvoices(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cards GET /api/dashboard/cards
func (h *DashboardHandler) Cards(c *fiber.Ctx) error {
	out, err := h.uc.FetchCardData(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
