// Package analytics contiene los casos de uso de la página principal del dashboard:
// gráfico de ingresos, últimas facturas y tarjetas de totales.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
	"github.com/jhoicas/dashboard-facturas/pkg/money"
)

const latestInvoicesLimit = 5 // facturas en el widget de últimas facturas

var monthOrder = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// DashboardUseCase genera los datos de la página principal.
//
// Fuente de datos: repositorios de ingresos, facturas y clientes (consultas read-only).
// Cualquier fallo de almacenamiento aborta la lectura completa; nunca se devuelven datos parciales.
type DashboardUseCase struct {
	revenueRepo  repository.RevenueRepository
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	format       *money.Formatter
	log          *logger.Logger

	// latency retardo artificial en revenue y últimas facturas para mostrar estados de carga. 0 = sin retardo.
	latency time.Duration
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	revenueRepo repository.RevenueRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	format *money.Formatter,
	log *logger.Logger,
) *DashboardUseCase {
	if format == nil {
		format = money.NewFormatter("en-US")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{
		revenueRepo:  revenueRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		format:       format,
		log:          log.Component("dashboard"),
	}
}

// WithSimulatedLatency activa el retardo artificial. Se respeta la cancelación del contexto.
func (uc *DashboardUseCase) WithSimulatedLatency(d time.Duration) *DashboardUseCase {
	uc.latency = d
	return uc
}

// FetchRevenue serie de ingresos en orden cronológico (Jan..Dec) más las etiquetas del eje Y.
func (uc *DashboardUseCase) FetchRevenue(ctx context.Context) (*dto.RevenueChartDTO, error) {
	if err := uc.simulateLatency(ctx); err != nil {
		return nil, err
	}
	list, err := uc.revenueRepo.List(ctx)
	if err != nil {
		return nil, uc.fault("fetchRevenue", "Failed to fetch revenue data.", err)
	}

	out := make([]dto.RevenueDTO, 0, len(list))
	for _, r := range list {
		out = append(out, dto.RevenueDTO{Month: r.Month, Revenue: r.Revenue})
	}
	// Meses desconocidos al final, en el orden recibido.
	sort.SliceStable(out, func(i, j int) bool {
		return monthIndex(out[i].Month) < monthIndex(out[j].Month)
	})

	yAxis, top := GenerateYAxis(out)
	return &dto.RevenueChartDTO{Revenue: out, YAxis: yAxis, TopLabel: top}, nil
}

// FetchLatestInvoices las 5 facturas más recientes con el monto formateado.
func (uc *DashboardUseCase) FetchLatestInvoices(ctx context.Context) ([]dto.LatestInvoiceDTO, error) {
	if err := uc.simulateLatency(ctx); err != nil {
		return nil, err
	}
	rows, err := uc.invoiceRepo.LatestInvoices(ctx, latestInvoicesLimit)
	if err != nil {
		return nil, uc.fault("fetchLatestInvoices", "Failed to fetch the latest invoices.", err)
	}
	out := make([]dto.LatestInvoiceDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LatestInvoiceDTO{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			ImageURL: r.ImageURL,
			Amount:   uc.format.Format(r.Amount),
		})
	}
	return out, nil
}

// FetchCardData totales de las tarjetas.
//
// Tres llamadas en paralelo:
//  1. CountInvoices  → NumberOfInvoices
//  2. Count          → NumberOfCustomers
//  3. SumByStatus    → TotalPaidInvoices + TotalPendingInvoices (una sola pasada)
func (uc *DashboardUseCase) FetchCardData(ctx context.Context) (*dto.CardDataDTO, error) {
	type countResult struct {
		n   int64
		err error
	}
	type sumsResult struct {
		paid    decimal.Decimal
		pending decimal.Decimal
		err     error
	}

	invoicesCh := make(chan countResult, 1)
	customersCh := make(chan countResult, 1)
	sumsCh := make(chan sumsResult, 1)

	go func() {
		n, err := uc.invoiceRepo.CountInvoices(ctx)
		invoicesCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.customerRepo.Count(ctx)
		customersCh <- countResult{n, err}
	}()
	go func() {
		paid, pending, err := uc.invoiceRepo.SumByStatus(ctx)
		sumsCh <- sumsResult{paid, pending, err}
	}()

	invoices := <-invoicesCh
	customers := <-customersCh
	sums := <-sumsCh

	for _, err := range []error{invoices.err, customers.err, sums.err} {
		if err != nil {
			return nil, uc.fault("fetchCardData", "Failed to fetch card data.", err)
		}
	}

	return &dto.CardDataDTO{
		NumberOfCustomers:    customers.n,
		NumberOfInvoices:     invoices.n,
		TotalPaidInvoices:    uc.format.FormatDecimal(sums.paid),
		TotalPendingInvoices: uc.format.FormatDecimal(sums.pending),
	}, nil
}

// GetOverview lanza las tres lecturas de la página en paralelo y espera a todas.
func (uc *DashboardUseCase) GetOverview(ctx context.Context) (*dto.DashboardOverviewDTO, error) {
	type revenueResult struct {
		chart *dto.RevenueChartDTO
		err   error
	}
	type latestResult struct {
		list []dto.LatestInvoiceDTO
		err  error
	}
	type cardsResult struct {
		cards *dto.CardDataDTO
		err   error
	}

	revenueCh := make(chan revenueResult, 1)
	latestCh := make(chan latestResult, 1)
	cardsCh := make(chan cardsResult, 1)

	go func() {
		chart, err := uc.FetchRevenue(ctx)
		revenueCh <- revenueResult{chart, err}
	}()
	go func() {
		list, err := uc.FetchLatestInvoices(ctx)
		latestCh <- latestResult{list, err}
	}()
	go func() {
		cards, err := uc.FetchCardData(ctx)
		cardsCh <- cardsResult{cards, err}
	}()

	revenue := <-revenueCh
	latest := <-latestCh
	cards := <-cardsCh

	if revenue.err != nil {
		return nil, revenue.err
	}
	if latest.err != nil {
		return nil, latest.err
	}
	if cards.err != nil {
		return nil, cards.err
	}

	return &dto.DashboardOverviewDTO{
		Revenue:        *revenue.chart,
		LatestInvoices: latest.list,
		Cards:          *cards.cards,
	}, nil
}

// GenerateYAxis etiquetas del eje Y de $0K hasta el máximo redondeado al siguiente millar,
// en pasos de 1000 y de mayor a menor.
func GenerateYAxis(revenue []dto.RevenueDTO) (labels []string, top int64) {
	var highest int64
	for _, r := range revenue {
		if r.Revenue > highest {
			highest = r.Revenue
		}
	}
	top = (highest + 999) / 1000 * 1000

	for i := top; i >= 0; i -= 1000 {
		labels = append(labels, fmt.Sprintf("$%dK", i/1000))
	}
	return labels, top
}

func (uc *DashboardUseCase) simulateLatency(ctx context.Context) error {
	if uc.latency <= 0 {
		return nil
	}
	timer := time.NewTimer(uc.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (uc *DashboardUseCase) fault(op, msg string, err error) error {
	uc.log.Error().Err(err).Str("op", op).Msg("database error")
	return domain.NewDatabaseError(op, msg, err)
}

func monthIndex(m string) int {
	if i, ok := monthOrder[m]; ok {
		return i
	}
	return len(monthOrder) + 1
}
