package billing

import (
	"context"

	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
)

// Revalidator invalida las vistas cacheadas bajo una ruta. Fire-and-forget para el mutador:
// un error se registra pero no revierte la escritura.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// NopRevalidator no invalida nada.
type NopRevalidator struct{}

func (NopRevalidator) Revalidate(context.Context, string) error { return nil }

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
