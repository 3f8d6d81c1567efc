package http_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
)

// store repositorios en memoria con lo mínimo que ejercitan las rutas.
type store struct {
	mu        sync.Mutex
	customers map[string]entity.Customer
	invoices  map[string]entity.Invoice
	users     map[string]entity.User
	revenue   []entity.Revenue
	fail      bool
}

var errStorage = errors.New("dial tcp 10.0.0.5:5432: connection refused")

func newStore() *store {
	return &store{
		customers: map[string]entity.Customer{},
		invoices:  map[string]entity.Invoice{},
		users:     map[string]entity.User{},
	}
}

func (s *store) err() error {
	if s.fail {
		return errStorage
	}
	return nil
}

type invoices struct{ *store }
type customers struct{ *store }
type revenues struct{ *store }
type users struct{ *store }

var (
	_ repository.InvoiceRepository  = invoices{}
	_ repository.CustomerRepository = customers{}
	_ repository.RevenueRepository  = revenues{}
	_ repository.UserRepository     = users{}
)

func (r invoices) sorted() []entity.Invoice {
	list := make([]entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		list = append(list, inv)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (r invoices) LatestInvoices(_ context.Context, limit int) ([]repository.LatestInvoiceRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.err(); err != nil {
		return nil, err
	}
	var out []repository.LatestInvoiceRow
	for _, inv := range r.sorted() {
		if len(out) == limit {
			break
		}
		c := r.customers[inv.CustomerID]
		out = append(out, repository.LatestInvoiceRow{ID: inv.ID, Amount: inv.Amount, Name: c.Name, Email: c.Email})
	}
	return out, nil
}

func (r invoices) CountInvoices(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.invoices)), r.err()
}

func (r invoices) SumByStatus(context.Context) (paid, pending decimal.Decimal, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.Status == entity.InvoiceStatusPaid {
			paid = paid.Add(decimal.NewFromInt(inv.Amount))
		} else {
			pending = pending.Add(decimal.NewFromInt(inv.Amount))
		}
	}
	return paid, pending, r.err()
}

// Search ignora query: las rutas solo necesitan paginación.
func (r invoices) Search(_ context.Context, _ string, limit, offset int) ([]repository.InvoiceTableRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.err(); err != nil {
		return nil, err
	}
	var out []repository.InvoiceTableRow
	for i, inv := range r.sorted() {
		if i < offset || len(out) == limit {
			continue
		}
		c := r.customers[inv.CustomerID]
		out = append(out, repository.InvoiceTableRow{
			ID: inv.ID, CustomerID: inv.CustomerID, Name: c.Name, Email: c.Email,
			Date: inv.Date, Amount: inv.Amount, Status: inv.Status,
		})
	}
	return out, nil
}

func (r invoices) CountSearch(context.Context, string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.invoices)), r.err()
}

func (r invoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.err(); err != nil {
		return nil, err
	}
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r invoices) Create(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.err(); err != nil {
		return err
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	r.invoices[inv.ID] = *inv
	return nil
}

func (r invoices) Update(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.err(); err != nil {
		return err
	}
	cur, ok := r.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.CustomerID, cur.Amount, cur.Status = inv.CustomerID, inv.Amount, inv.Status
	r.invoices[inv.ID] = cur
	return nil
}

func (r invoices) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.invoices, id)
	return r.err()
}

func (r customers) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.customers)), r.err()
}

func (r customers) ListFields(context.Context) ([]repository.CustomerField, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.CustomerField
	for _, c := range r.customers {
		out = append(out, repository.CustomerField{ID: c.ID, Name: c.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, r.err()
}

func (r customers) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.customers[id]
	return ok, r.err()
}

func (r customers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, r.err()
	}
	return &c, r.err()
}

func (r customers) SearchSummaries(context.Context, string) ([]repository.CustomerSummaryRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.CustomerSummaryRow
	for _, c := range r.customers {
		out = append(out, repository.CustomerSummaryRow{ID: c.ID, Name: c.Name, Email: c.Email})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, r.err()
}

func (r customers) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = *c
	return r.err()
}

func (r revenues) List(context.Context) ([]entity.Revenue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Revenue(nil), r.revenue...), r.err()
}

func (r revenues) Upsert(_ context.Context, rev entity.Revenue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revenue = append(r.revenue, rev)
	return r.err()
}

func (r users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, r.err()
	}
	return &u, r.err()
}

func (r users) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Email] = *u
	return r.err()
}

func date(s string) time.Time {
	d, _ := time.Parse(entity.DateLayout, s)
	return d
}
