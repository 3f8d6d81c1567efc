package dto

// RevenueDTO punto de la serie de ingresos.
type RevenueDTO struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// RevenueChartDTO serie en orden cronológico más las etiquetas del eje Y.
type RevenueChartDTO struct {
	Revenue  []RevenueDTO `json:"revenue"`
	YAxis    []string     `json:"y_axis"`    // de mayor a menor, ej. ["$5K", ..., "$0K"]
	TopLabel int64        `json:"top_label"` // máximo redondeado al siguiente millar
}

// LatestInvoiceDTO factura reciente con el monto ya formateado.
type LatestInvoiceDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
	Amount   string `json:"amount"`
}

// CardDataDTO tarjetas del dashboard.
type CardDataDTO struct {
	NumberOfCustomers    int64  `json:"number_of_customers"`
	NumberOfInvoices     int64  `json:"number_of_invoices"`
	TotalPaidInvoices    string `json:"total_paid_invoices"`
	TotalPendingInvoices string `json:"total_pending_invoices"`
}

// DashboardOverviewDTO datos completos de la página principal del dashboard.
type DashboardOverviewDTO struct {
	Revenue        RevenueChartDTO    `json:"revenue"`
	LatestInvoices []LatestInvoiceDTO `json:"latest_invoices"`
	Cards          CardDataDTO        `json:"cards"`
}
