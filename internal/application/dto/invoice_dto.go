package dto

// InvoiceRowDTO fila del listado de facturas.
type InvoiceRowDTO struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ImageURL   string `json:"image_url"`
	Date       string `json:"date"`
	Amount     int64  `json:"amount"` // centavos; la UI formatea
	Status     string `json:"status"`
}

// InvoicePageDTO página del listado filtrado.
type InvoicePageDTO struct {
	Invoices    []InvoiceRowDTO `json:"invoices"`
	Query       string          `json:"query"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
	Pagination  []string        `json:"pagination"` // ej. ["1","2","3","...","9","10"]
}

// InvoicePagesDTO total de páginas para una búsqueda.
type InvoicePagesDTO struct {
	TotalPages int `json:"total_pages"`
}

// InvoiceFormDTO factura para el formulario de edición; Amount en unidades mayores.
type InvoiceFormDTO struct {
	ID         string  `json:"id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status"`
}

// EditInvoicePageDTO datos de la página de edición.
type EditInvoicePageDTO struct {
	Invoice   InvoiceFormDTO     `json:"invoice"`
	Customers []CustomerFieldDTO `json:"customers"`
}
