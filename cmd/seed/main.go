// seed puebla la base con los datos de ejemplo del dashboard: un usuario, clientes,
// facturas e ingresos mensuales. Aplica las migraciones pendientes antes de insertar.
//
// Uso: go run ./cmd/seed
// Es idempotente: clientes e ingresos se insertan con ON CONFLICT, el usuario se omite
// si el email ya existe y las facturas solo se cargan sobre una tabla vacía.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/dashboard-facturas/internal/application/auth"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/infrastructure/postgres"
	"github.com/jhoicas/dashboard-facturas/pkg/config"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
)

var users = []entity.User{
	{Name: "User", Email: "user@nextmail.com"},
}

const seedPassword = "123456"

var customers = []entity.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

type invoiceSeed struct {
	customer int
	amount   int64
	status   string
	date     string
}

var invoices = []invoiceSeed{
	{0, 15795, entity.InvoiceStatusPending, "2022-12-06"},
	{1, 20348, entity.InvoiceStatusPending, "2022-11-14"},
	{4, 3040, entity.InvoiceStatusPaid, "2022-10-29"},
	{3, 44800, entity.InvoiceStatusPaid, "2023-09-10"},
	{5, 34577, entity.InvoiceStatusPending, "2023-08-05"},
	{2, 54246, entity.InvoiceStatusPending, "2023-07-16"},
	{0, 666, entity.InvoiceStatusPending, "2023-06-27"},
	{3, 32545, entity.InvoiceStatusPaid, "2023-06-09"},
	{4, 1250, entity.InvoiceStatusPaid, "2023-06-17"},
	{5, 8546, entity.InvoiceStatusPaid, "2023-06-07"},
	{1, 500, entity.InvoiceStatusPaid, "2023-08-19"},
	{5, 8945, entity.InvoiceStatusPaid, "2023-06-03"},
	{2, 1000, entity.InvoiceStatusPaid, "2022-06-05"},
}

var revenue = []entity.Revenue{
	{Month: "Jan", Revenue: 2000}, {Month: "Feb", Revenue: 1800}, {Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500}, {Month: "May", Revenue: 2300}, {Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500}, {Month: "Aug", Revenue: 3700}, {Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800}, {Month: "Nov", Revenue: 3000}, {Month: "Dec", Revenue: 4800},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool := postgres.NewLazyPool(cfg.DB)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err = postgres.NewTxRunner(pool).Run(ctx, func(r postgres.TxRepos) error {
		if err := seedUsers(ctx, r, log); err != nil {
			return err
		}
		for i := range customers {
			if err := r.Customers.Create(ctx, &customers[i]); err != nil {
				return err
			}
		}
		if err := seedInvoices(ctx, r); err != nil {
			return err
		}
		for _, rev := range revenue {
			if err := r.Revenue.Upsert(ctx, rev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Int("users", len(users)).
		Int("customers", len(customers)).
		Int("invoices", len(invoices)).
		Int("revenue", len(revenue)).
		Msg("seed completado")
}

// seedUsers da de alta los usuarios con RegisterUser (hash bcrypt) sobre los repos de la tx.
func seedUsers(ctx context.Context, r postgres.TxRepos, log *logger.Logger) error {
	registrar := auth.NewAuthUseCase(r.Users, auth.JWTConfig{}, log)
	for _, u := range users {
		existing, err := r.Users.GetByEmail(ctx, u.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := registrar.RegisterUser(ctx, u.Name, u.Email, seedPassword); err != nil {
			return err
		}
	}
	return nil
}

func seedInvoices(ctx context.Context, r postgres.TxRepos) error {
	n, err := r.Invoices.CountInvoices(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, s := range invoices {
		if !entity.IsValidInvoiceStatus(s.status) || s.amount <= 0 {
			return fmt.Errorf("seed: factura inválida %+v", s)
		}
		date, err := time.Parse(entity.DateLayout, s.date)
		if err != nil {
			return err
		}
		inv := &entity.Invoice{
			CustomerID: customers[s.customer].ID,
			Amount:     s.amount,
			Status:     s.status,
			Date:       date,
		}
		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
	}
	return nil
}
