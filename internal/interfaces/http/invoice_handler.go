package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dashboard-facturas/internal/application/billing"
	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturas (protegido).
type InvoiceHandler struct {
	query   *billing.InvoiceQueryUseCase
	mutator *billing.InvoiceMutator
	pdf     *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(query *billing.InvoiceQueryUseCase, mutator *billing.InvoiceMutator, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{query: query, mutator: mutator, pdf: pdf}
}

// List página filtrada de facturas con total de páginas y marcadores de paginación.
// GET /api/dashboard/invoices?query=&page=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.query.FetchInvoicePage(c.Context(), c.Query("query"), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pages total de páginas para una búsqueda.
// GET /api/dashboard/invoices/pages?query=
func (h *InvoiceHandler) Pages(c *fiber.Ctx) error {
	total, err := h.query.FetchInvoicesPages(c.Context(), c.Query("query"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InvoicePagesDTO{TotalPages: total})
}

// Edit factura (monto en unidades mayores) y opciones de cliente. 404 si no existe.
// GET /api/dashboard/invoices/:id/edit
func (h *InvoiceHandler) Edit(c *fiber.Ctx) error {
	out, err := h.query.FetchEditPage(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF descarga la representación gráfica de la factura.
// GET /api/dashboard/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Create POST /api/dashboard/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	raw, err := formInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return writeMutation(c, h.mutator.Create(c.Context(), raw), fiber.StatusCreated)
}

// Update PUT /api/dashboard/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	raw, err := formInput(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return writeMutation(c, h.mutator.Update(c.Context(), c.Params("id"), raw), fiber.StatusOK)
}

// Delete DELETE /api/dashboard/invoices/:id. Idempotente.
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	return writeMutation(c, h.mutator.Delete(c.Context(), c.Params("id")), fiber.StatusNoContent)
}

// writeMutation traduce el resultado de una mutación:
//   - 404 si el registro no existe.
//   - 422 con los errores por campo si la validación falló.
//   - 500 con el mensaje genérico si falló el almacenamiento.
//   - 303 + Location para formularios HTML, o JSON {"redirect"} para clientes JSON.
func writeMutation(c *fiber.Ctx, res billing.MutationResult, okStatus int) error {
	switch {
	case res.NotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
	case res.State != nil && len(res.State.Errors) > 0:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res.State)
	case res.State != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(res.State)
	case res.RedirectTo == "":
		return c.SendStatus(okStatus)
	case isFormPost(c):
		return c.Redirect(res.RedirectTo, fiber.StatusSeeOther)
	default:
		return c.Status(okStatus).JSON(dto.RedirectResponse{ID: res.ID, Redirect: res.RedirectTo})
	}
}
