package billing_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

var errStorage = errors.New("connection refused")

type memStore struct {
	mu        sync.Mutex
	customers map[string]entity.Customer
	invoices  map[string]entity.Invoice
	fail      bool // toda operación falla con errStorage
}

func newMemStore() *memStore {
	return &memStore{customers: map[string]entity.Customer{}, invoices: map[string]entity.Invoice{}}
}

func (s *memStore) addCustomer(id, name, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[id] = entity.Customer{ID: id, Name: name, Email: email, ImageURL: "/customers/" + id + ".png"}
}

func (s *memStore) addInvoice(id, customerID string, cents int64, status, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, _ := time.Parse(entity.DateLayout, date)
	s.invoices[id] = entity.Invoice{ID: id, CustomerID: customerID, Amount: cents, Status: status, Date: d}
}

type invoiceRepo struct{ s *memStore }

var _ repository.InvoiceRepository = invoiceRepo{}

func (r invoiceRepo) sorted() []entity.Invoice {
	list := make([]entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
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

func (r invoiceRepo) matches(inv entity.Invoice, q string) bool {
	c := r.s.customers[inv.CustomerID]
	q = strings.ToLower(q)
	for _, f := range []string{c.Name, c.Email, decimal.NewFromInt(inv.Amount).String(), inv.Date.Format(entity.DateLayout), inv.Status} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (r invoiceRepo) LatestInvoices(_ context.Context, limit int) ([]repository.LatestInvoiceRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return nil, errStorage
	}
	var out []repository.LatestInvoiceRow
	for _, inv := range r.sorted() {
		if len(out) == limit {
			break
		}
		c := r.s.customers[inv.CustomerID]
		out = append(out, repository.LatestInvoiceRow{ID: inv.ID, Amount: inv.Amount, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL})
	}
	return out, nil
}

func (r invoiceRepo) CountInvoices(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return 0, errStorage
	}
	return int64(len(r.s.invoices)), nil
}

func (r invoiceRepo) SumByStatus(context.Context) (paid, pending decimal.Decimal, err error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return decimal.Zero, decimal.Zero, errStorage
	}
	for _, inv := range r.s.invoices {
		if inv.Status == entity.InvoiceStatusPaid {
			paid = paid.Add(decimal.NewFromInt(inv.Amount))
		} else {
			pending = pending.Add(decimal.NewFromInt(inv.Amount))
		}
	}
	return paid, pending, nil
}

func (r invoiceRepo) Search(_ context.Context, query string, limit, offset int) ([]repository.InvoiceTableRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return nil, errStorage
	}
	var out []repository.InvoiceTableRow
	i := 0
	for _, inv := range r.sorted() {
		if !r.matches(inv, query) {
			continue
		}
		if i >= offset && len(out) < limit {
			c := r.s.customers[inv.CustomerID]
			out = append(out, repository.InvoiceTableRow{
				ID: inv.ID, CustomerID: inv.CustomerID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL,
				Date: inv.Date, Amount: inv.Amount, Status: inv.Status,
			})
		}
		i++
	}
	return out, nil
}

func (r invoiceRepo) CountSearch(_ context.Context, query string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return 0, errStorage
	}
	var n int64
	for _, inv := range r.s.invoices {
		if r.matches(inv, query) {
			n++
		}
	}
	return n, nil
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return nil, errStorage
	}
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return errStorage
	}
	if _, ok := r.s.customers[inv.CustomerID]; !ok {
		return domain.ErrInvalidInput
	}
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r invoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return errStorage
	}
	cur, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.CustomerID, cur.Amount, cur.Status = inv.CustomerID, inv.Amount, inv.Status
	r.s.invoices[inv.ID] = cur
	return nil
}

func (r invoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return errStorage
	}
	delete(r.s.invoices, id)
	return nil
}

type customerRepo struct{ s *memStore }

var _ repository.CustomerRepository = customerRepo{}

func (r customerRepo) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return 0, errStorage
	}
	return int64(len(r.s.customers)), nil
}

func (r customerRepo) ListFields(context.Context) ([]repository.CustomerField, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return nil, errStorage
	}
	var out []repository.CustomerField
	for _, c := range r.s.customers {
		out = append(out, repository.CustomerField{ID: c.ID, Name: c.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r customerRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return false, errStorage
	}
	_, ok := r.s.customers[id]
	return ok, nil
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return nil, errStorage
	}
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r customerRepo) SearchSummaries(_ context.Context, query string) ([]repository.CustomerSummaryRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return nil, errStorage
	}
	q := strings.ToLower(query)
	var out []repository.CustomerSummaryRow
	for _, c := range r.s.customers {
		if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		row := repository.CustomerSummaryRow{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL}
		for _, inv := range r.s.invoices {
			if inv.CustomerID != c.ID {
				continue
			}
			row.TotalInvoices++
			if inv.Status == entity.InvoiceStatusPaid {
				row.TotalPaid = row.TotalPaid.Add(decimal.NewFromInt(inv.Amount))
			} else {
				row.TotalPending = row.TotalPending.Add(decimal.NewFromInt(inv.Amount))
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fail {
		return errStorage
	}
	r.s.customers[c.ID] = *c
	return nil
}

// recordingRevalidator guarda las rutas invalidadas.
type recordingRevalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingRevalidator) Revalidate(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

func (r *recordingRevalidator) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}
