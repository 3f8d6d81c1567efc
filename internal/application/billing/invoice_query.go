package billing

import (
	"context"
	"math"
	"strconv"

	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
	"github.com/jhoicas/dashboard-facturas/pkg/money"
)

// ItemsPerPage tamaño fijo de página del listado de facturas.
const ItemsPerPage = 6

// InvoiceQueryUseCase lecturas de facturas para el listado y el formulario de edición.
// Los fallos de almacenamiento se propagan como *domain.DatabaseError.
type InvoiceQueryUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewInvoiceQueryUseCase construye el caso de uso.
func NewInvoiceQueryUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *InvoiceQueryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceQueryUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		log:          log.Component("invoice_query"),
	}
}

// FetchFilteredInvoices devuelve la página `page` (base 1) de facturas que coinciden con query.
// Una página menor que 1 se trata como 1 y una mayor que MaxPage como MaxPage.
func (uc *InvoiceQueryUseCase) FetchFilteredInvoices(ctx context.Context, query string, page int) ([]dto.InvoiceRowDTO, error) {
	page = clampPage(page)
	rows, err := uc.invoiceRepo.Search(ctx, query, ItemsPerPage, (page-1)*ItemsPerPage)
	if err != nil {
		return nil, uc.fault("fetchFilteredInvoices", "Failed to fetch invoices.", err)
	}
	out := make([]dto.InvoiceRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InvoiceRowDTO{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			Name:       r.Name,
			Email:      r.Email,
			ImageURL:   r.ImageURL,
			Date:       r.Date.Format(entity.DateLayout),
			Amount:     r.Amount,
			Status:     r.Status,
		})
	}
	return out, nil
}

// FetchInvoicesPages total de páginas para query: ceil(coincidencias / ItemsPerPage).
func (uc *InvoiceQueryUseCase) FetchInvoicesPages(ctx context.Context, query string) (int, error) {
	n, err := uc.invoiceRepo.CountSearch(ctx, query)
	if err != nil {
		return 0, uc.fault("fetchInvoicesPages", "Failed to fetch total number of invoices.", err)
	}
	return TotalPages(n), nil
}

// FetchInvoicePage listado y total de páginas en paralelo, más los marcadores de paginación.
func (uc *InvoiceQueryUseCase) FetchInvoicePage(ctx context.Context, query string, page int) (*dto.InvoicePageDTO, error) {
	page = clampPage(page)

	type rowsResult struct {
		rows []dto.InvoiceRowDTO
		err  error
	}
	type pagesResult struct {
		total int
		err   error
	}
	rowsCh := make(chan rowsResult, 1)
	pagesCh := make(chan pagesResult, 1)

	go func() {
		rows, err := uc.FetchFilteredInvoices(ctx, query, page)
		rowsCh <- rowsResult{rows, err}
	}()
	go func() {
		total, err := uc.FetchInvoicesPages(ctx, query)
		pagesCh <- pagesResult{total, err}
	}()

	rows := <-rowsCh
	pages := <-pagesCh
	if rows.err != nil {
		return nil, rows.err
	}
	if pages.err != nil {
		return nil, pages.err
	}

	return &dto.InvoicePageDTO{
		Invoices:    rows.rows,
		Query:       query,
		CurrentPage: page,
		TotalPages:  pages.total,
		Pagination:  GeneratePagination(page, pages.total),
	}, nil
}

// FetchInvoiceByID devuelve la factura con el monto en unidades mayores, o (nil, nil) si no existe.
func (uc *InvoiceQueryUseCase) FetchInvoiceByID(ctx context.Context, id string) (*dto.InvoiceFormDTO, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.fault("fetchInvoiceById", "Failed to fetch invoice.", err)
	}
	if inv == nil {
		return nil, nil
	}
	return &dto.InvoiceFormDTO{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     money.FromCents(inv.Amount),
		Status:     inv.Status,
	}, nil
}

// FetchEditPage factura y clientes en paralelo. domain.ErrNotFound si la factura no existe.
func (uc *InvoiceQueryUseCase) FetchEditPage(ctx context.Context, id string) (*dto.EditInvoicePageDTO, error) {
	type invoiceResult struct {
		inv *dto.InvoiceFormDTO
		err error
	}
	type customersResult struct {
		list []dto.CustomerFieldDTO
		err  error
	}
	invCh := make(chan invoiceResult, 1)
	custCh := make(chan customersResult, 1)

	go func() {
		inv, err := uc.FetchInvoiceByID(ctx, id)
		invCh <- invoiceResult{inv, err}
	}()
	go func() {
		list, err := fetchCustomerFields(ctx, uc.customerRepo)
		if err != nil {
			err = uc.fault("fetchCustomers", "Failed to fetch all customers.", err)
		}
		custCh <- customersResult{list, err}
	}()

	inv := <-invCh
	cust := <-custCh
	if inv.err != nil {
		return nil, inv.err
	}
	if cust.err != nil {
		return nil, cust.err
	}
	if inv.inv == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.EditInvoicePageDTO{Invoice: *inv.inv, Customers: cust.list}, nil
}

func (uc *InvoiceQueryUseCase) fault(op, msg string, err error) error {
	uc.log.Error().Err(err).Str("op", op).Msg("database error")
	return domain.NewDatabaseError(op, msg, err)
}

// MaxPage página más alta que se consulta; (MaxPage-1)*ItemsPerPage cabe en un int.
const MaxPage = math.MaxInt / ItemsPerPage

// clampPage lleva page a [1, MaxPage]. Más allá de la última página el listado sale vacío.
func clampPage(page int) int {
	switch {
	case page < 1:
		return 1
	case page > MaxPage:
		return MaxPage
	}
	return page
}

// TotalPages ceil(count / ItemsPerPage).
func TotalPages(count int64) int {
	if count <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(ItemsPerPage)))
}

// GeneratePagination marcadores de paginación; "..." marca un hueco.
//
//	7 páginas o menos: todas.
//	página actual entre las 3 primeras: 1 2 3 ... n-1 n
//	página actual entre las 3 últimas:  1 2 ... n-2 n-1 n
//	en medio:                           1 ... c-1 c c+1 ... n
func GeneratePagination(current, total int) []string {
	if total <= 0 {
		return []string{}
	}
	if total <= 7 {
		return pageRange(1, total)
	}
	switch {
	case current <= 3:
		return join(pageRange(1, 3), []string{"..."}, pageRange(total-1, total))
	case current >= total-2:
		return join(pageRange(1, 2), []string{"..."}, pageRange(total-2, total))
	default:
		return join([]string{"1", "..."}, pageRange(current-1, current+1), []string{"...", strconv.Itoa(total)})
	}
}

func pageRange(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

func join(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

