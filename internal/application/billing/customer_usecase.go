package billing

import (
	"context"

	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
	"github.com/jhoicas/dashboard-facturas/pkg/money"
)

// CustomerUseCase lecturas de clientes: opciones para selectores y tabla con totales.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	format *money.Formatter
	log    *logger.Logger
}

// NewCustomerUseCase construye el caso de uso. format nil usa en-US.
func NewCustomerUseCase(repo repository.CustomerRepository, format *money.Formatter, log *logger.Logger) *CustomerUseCase {
	if format == nil {
		format = money.NewFormatter("en-US")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{repo: repo, format: format, log: log.Component("customers")}
}

// FetchCustomers todos los clientes (id, nombre) ordenados por nombre.
func (uc *CustomerUseCase) FetchCustomers(ctx context.Context) ([]dto.CustomerFieldDTO, error) {
	list, err := fetchCustomerFields(ctx, uc.repo)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "fetchCustomers").Msg("database error")
		return nil, domain.NewDatabaseError("fetchCustomers", "Failed to fetch all customers.", err)
	}
	return list, nil
}

// FetchFilteredCustomers clientes cuyo nombre o email coincide con query, con totales formateados.
// Los clientes sin facturas aparecen con totales en cero.
func (uc *CustomerUseCase) FetchFilteredCustomers(ctx context.Context, query string) ([]dto.CustomerSummaryDTO, error) {
	rows, err := uc.repo.SearchSummaries(ctx, query)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "fetchFilteredCustomers").Msg("database error")
		return nil, domain.NewDatabaseError("fetchFilteredCustomers", "Failed to fetch customer table.", err)
	}
	out := make([]dto.CustomerSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CustomerSummaryDTO{
			ID:            r.ID,
			Name:          r.Name,
			Email:         r.Email,
			ImageURL:      r.ImageURL,
			TotalInvoices: r.TotalInvoices,
			TotalPending:  uc.format.FormatDecimal(r.TotalPending),
			TotalPaid:     uc.format.FormatDecimal(r.TotalPaid),
		})
	}
	return out, nil
}

func fetchCustomerFields(ctx context.Context, repo repository.CustomerRepository) ([]dto.CustomerFieldDTO, error) {
	fields, err := repo.ListFields(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerFieldDTO, 0, len(fields))
	for _, f := range fields {
		out = append(out, dto.CustomerFieldDTO{ID: f.ID, Name: f.Name})
	}
	return out, nil
}
