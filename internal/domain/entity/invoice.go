package entity

import "time"

// Estados válidos de una factura.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// DateLayout formato ISO de la fecha de emisión (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Invoice representa una factura. Amount se guarda en centavos para evitar errores de coma flotante.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     int64 // centavos
	Status     string
	Date       time.Time // solo fecha; se asigna al crear y no cambia
}

// IsValidInvoiceStatus indica si s pertenece al conjunto cerrado de estados.
func IsValidInvoiceStatus(s string) bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}
