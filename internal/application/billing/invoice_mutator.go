package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
)

const (
	// InvoicesPath ruta del listado al que se navega tras crear o editar.
	InvoicesPath = "/dashboard/invoices"
	// DashboardPath raíz de las vistas que se invalidan tras mutar: listado, edición,
	// tarjetas, últimas facturas y totales de clientes dependen de las facturas.
	DashboardPath = "/dashboard"
)

// MutationResult resultado de una mutación. Con State != nil el formulario se vuelve a pintar
// con esos errores; con RedirectTo != "" la UI navega.
type MutationResult struct {
	ID         string
	State      *dto.FormState
	RedirectTo string
	NotFound   bool
}

// OK indica si la mutación se aplicó.
func (r MutationResult) OK() bool { return r.State == nil && !r.NotFound }

// InvoiceMutator alta, edición y baja de facturas. Valida siempre antes de tocar almacenamiento
// y convierte los fallos de escritura en un mensaje para el formulario.
type InvoiceMutator struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	revalidator  Revalidator
	log          *logger.Logger
	now          func() time.Time
}

// NewInvoiceMutator construye el mutador. revalidator nil descarta las señales de invalidación.
func NewInvoiceMutator(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	revalidator Revalidator,
	log *logger.Logger,
) *InvoiceMutator {
	if revalidator == nil {
		revalidator = NopRevalidator{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceMutator{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		revalidator:  revalidator,
		log:          log.Component("invoice_mutator"),
		now:          time.Now,
	}
}

// Create valida, convierte el monto a centavos, fecha la factura hoy (UTC) y la persiste.
func (m *InvoiceMutator) Create(ctx context.Context, raw RawInput) MutationResult {
	schema := CreateInvoiceSchema

	in, res, ok := m.validate(ctx, schema, raw)
	if !ok {
		return res
	}

	inv := &entity.Invoice{
		CustomerID: in.CustomerID,
		Amount:     in.Cents,
		Status:     in.Status,
		Date:       today(m.now()),
	}
	if err := m.invoiceRepo.Create(ctx, inv); err != nil {
		return m.writeFailure(schema, "createInvoice", err)
	}

	m.log.Info().Str("invoice_id", inv.ID).Msg("invoice created")
	m.revalidate(ctx)
	return MutationResult{ID: inv.ID, RedirectTo: InvoicesPath}
}

// Update reemplaza cliente, monto y estado de la factura id. La fecha no cambia.
// Un id inexistente devuelve NotFound.
func (m *InvoiceMutator) Update(ctx context.Context, id string, raw RawInput) MutationResult {
	schema := UpdateInvoiceSchema

	in, res, ok := m.validate(ctx, schema, raw)
	if !ok {
		return res
	}

	inv := &entity.Invoice{
		ID:         id,
		CustomerID: in.CustomerID,
		Amount:     in.Cents,
		Status:     in.Status,
	}
	if err := m.invoiceRepo.Update(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return MutationResult{ID: id, NotFound: true}
		}
		return m.writeFailure(schema, "updateInvoice", err)
	}

	m.log.Info().Str("invoice_id", id).Msg("invoice updated")
	m.revalidate(ctx)
	return MutationResult{ID: id, RedirectTo: InvoicesPath}
}

// Delete borra la factura id. Borrar un id inexistente no es error. No navega.
func (m *InvoiceMutator) Delete(ctx context.Context, id string) MutationResult {
	if err := m.invoiceRepo.Delete(ctx, id); err != nil {
		m.log.Error().Err(err).Str("op", "deleteInvoice").Str("invoice_id", id).Msg("database error")
		return MutationResult{ID: id, State: &dto.FormState{Message: "Database Error: Failed to Delete Invoice."}}
	}
	m.revalidate(ctx)
	return MutationResult{ID: id}
}

// validate aplica el esquema y comprueba que el cliente exista.
func (m *InvoiceMutator) validate(ctx context.Context, schema InvoiceSchema, raw RawInput) (InvoiceInput, MutationResult, bool) {
	in, err := schema.Parse(raw)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return InvoiceInput{}, MutationResult{State: verr.State()}, false
		}
		return InvoiceInput{}, m.writeFailure(schema, "validate", err), false
	}

	exists, err := m.customerRepo.Exists(ctx, in.CustomerID)
	if err != nil {
		return InvoiceInput{}, m.writeFailure(schema, "customerExists", err), false
	}
	if !exists {
		return InvoiceInput{}, unknownCustomer(schema), false
	}
	return in, MutationResult{}, true
}

func (m *InvoiceMutator) writeFailure(schema InvoiceSchema, op string, err error) MutationResult {
	// Carrera: el cliente se borró entre la validación y la escritura.
	if errors.Is(err, domain.ErrInvalidInput) {
		return unknownCustomer(schema)
	}
	m.log.Error().Err(err).Str("op", op).Msg("database error")
	return MutationResult{State: &dto.FormState{Message: schema.DatabaseErrorMessage()}}
}

func (m *InvoiceMutator) revalidate(ctx context.Context) {
	if err := m.revalidator.Revalidate(ctx, DashboardPath); err != nil {
		m.log.Warn().Err(err).Str("path", DashboardPath).Msg("revalidate failed")
	}
}

func unknownCustomer(schema InvoiceSchema) MutationResult {
	return MutationResult{State: &dto.FormState{
		Errors:  map[string][]string{FieldCustomerID: {msgSelectCustomer}},
		Message: schema.MissingFieldsMessage(),
	}}
}

func today(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
