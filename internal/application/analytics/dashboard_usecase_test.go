package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dashboard-facturas/internal/application/analytics"
	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

var errDown = errors.New("db down")

type fakeRevenue struct {
	list []entity.Revenue
	err  error
}

func (f fakeRevenue) List(context.Context) ([]entity.Revenue, error) { return f.list, f.err }
func (f fakeRevenue) Upsert(context.Context, entity.Revenue) error  { return nil }

// fakeInvoices solo implementa las lecturas del dashboard.
type fakeInvoices struct {
	repository.InvoiceRepository
	latest        []repository.LatestInvoiceRow
	count         int64
	paid, pending decimal.Decimal
	sumErr        error
	gotLimit      int
}

func (f *fakeInvoices) LatestInvoices(_ context.Context, limit int) ([]repository.LatestInvoiceRow, error) {
	f.gotLimit = limit
	return f.latest, nil
}

func (f *fakeInvoices) CountInvoices(context.Context) (int64, error) { return f.count, nil }

func (f *fakeInvoices) SumByStatus(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return f.paid, f.pending, f.sumErr
}

type fakeCustomers struct {
	repository.CustomerRepository
	count int64
}

func (f fakeCustomers) Count(context.Context) (int64, error) { return f.count, nil }

func newDashboard(rev fakeRevenue, inv *fakeInvoices) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(rev, inv, fakeCustomers{count: 10}, nil, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestFetchRevenue_OrdenCronologicoYEjeY(t *testing.T) {
	rev := fakeRevenue{list: []entity.Revenue{
		{Month: "Mar", Revenue: 2200}, {Month: "Jan", Revenue: 2000}, {Month: "???", Revenue: 1},
		{Month: "Feb", Revenue: 4800},
	}}
	uc := newDashboard(rev, &fakeInvoices{})

	chart, err := uc.FetchRevenue(context.Background())
	require.NoError(t, err)

	months := make([]string, 0, len(chart.Revenue))
	for _, r := range chart.Revenue {
		months = append(months, r.Month)
	}
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "???"}, months)
	assert.Equal(t, int64(5000), chart.TopLabel)
	assert.Equal(t, []string{"$5K", "$4K", "$3K", "$2K", "$1K", "$0K"}, chart.YAxis)
}

func TestGenerateYAxis_SinDatos(t *testing.T) {
	labels, top := analytics.GenerateYAxis(nil)
	assert.Equal(t, []string{"$0K"}, labels)
	assert.Zero(t, top)

	labels, top = analytics.GenerateYAxis([]dto.RevenueDTO{{Month: "Jan", Revenue: 3000}})
	assert.Equal(t, int64(3000), top)
	assert.Len(t, labels, 4)
}

func TestFetchRevenue_Fallo(t *testing.T) {
	uc := newDashboard(fakeRevenue{err: errDown}, &fakeInvoices{})

	_, err := uc.FetchRevenue(context.Background())
	assert.EqualError(t, err, "Database Error: Failed to fetch revenue data.")
	assert.ErrorIs(t, err, errDown)
}

func TestFetchLatestInvoices_FormateaMontos(t *testing.T) {
	inv := &fakeInvoices{latest: []repository.LatestInvoiceRow{
		{ID: "1", Amount: 15795, Name: "Delba de Oliveira", Email: "delba@oliveira.com"},
	}}
	uc := newDashboard(fakeRevenue{}, inv)

	list, err := uc.FetchLatestInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "$157.95", list[0].Amount)
	assert.Equal(t, 5, inv.gotLimit)
}

func TestFetchCardData(t *testing.T) {
	inv := &fakeInvoices{count: 13, paid: decimal.NewFromInt(123456), pending: decimal.Zero}
	uc := newDashboard(fakeRevenue{}, inv)

	cards, err := uc.FetchCardData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), cards.NumberOfCustomers)
	assert.Equal(t, int64(13), cards.NumberOfInvoices)
	assert.Equal(t, "$1,234.56", cards.TotalPaidInvoices)
	assert.Equal(t, "$0.00", cards.TotalPendingInvoices)

	inv.sumErr = errDown
	_, err = uc.FetchCardData(context.Background())
	assert.EqualError(t, err, "Database Error: Failed to fetch card data.")
}

func TestGetOverview_FalloEnUnaLecturaAbortaTodo(t *testing.T) {
	uc := newDashboard(fakeRevenue{list: []entity.Revenue{{Month: "Jan", Revenue: 1}}}, &fakeInvoices{sumErr: errDown})

	_, err := uc.GetOverview(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsDatabaseError(err))
}

func TestGetOverview_OK(t *testing.T) {
	uc := newDashboard(fakeRevenue{list: []entity.Revenue{{Month: "Jan", Revenue: 1500}}}, &fakeInvoices{count: 1})

	ov, err := uc.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Len(t, ov.Revenue.Revenue, 1)
	assert.Equal(t, int64(1), ov.Cards.NumberOfInvoices)
}

func TestSimulatedLatency_RespetaCancelacion(t *testing.T) {
	uc := newDashboard(fakeRevenue{}, &fakeInvoices{}).WithSimulatedLatency(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := uc.FetchLatestInvoices(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
