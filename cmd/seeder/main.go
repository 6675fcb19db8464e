package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"billing-engine/config"
	"billing-engine/internal/core/domain"
	"billing-engine/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	totalCustomers      = 100
	invoicesPerCustomer = 10
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id SERIAL PRIMARY KEY,
		currency TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id SERIAL PRIMARY KEY,
		customer_id INTEGER NOT NULL REFERENCES customers(id),
		amount NUMERIC(12, 2) NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_status_id ON invoices (status, id)`,
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to connect to database")
	}
	defer conn.Close(ctx)

	for _, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			log.Fatal().Err(err).Msg("Schema setup failed")
		}
	}

	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		log.Fatal().Err(err).Msg("Customer count failed")
	}
	if count >= totalCustomers {
		log.Info().Int("customers", count).Msg("Database already seeded, skipping")
		return
	}

	currencies := domain.Currencies()
	rng := rand.New(rand.NewSource(1))

	// Bulk insert customers with CopyFrom, then read the ids back.
	customerRows := make([][]interface{}, 0, totalCustomers)
	for i := 0; i < totalCustomers; i++ {
		currency := currencies[rng.Intn(len(currencies))]
		customerRows = append(customerRows, []interface{}{string(currency)})
	}

	if _, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"customers"},
		[]string{"currency"},
		pgx.CopyFromRows(customerRows),
	); err != nil {
		log.Fatal().Err(err).Msg("Customer bulk insert failed")
	}

	rows, err := conn.Query(ctx, "SELECT id, currency FROM customers ORDER BY id")
	if err != nil {
		log.Fatal().Err(err).Msg("Customer read-back failed")
	}
	var customers []domain.Customer
	for rows.Next() {
		var (
			id       int
			currency string
		)
		if err := rows.Scan(&id, &currency); err != nil {
			rows.Close()
			log.Fatal().Err(err).Msg("Customer scan failed")
		}
		customers = append(customers, domain.Customer{ID: id, Currency: domain.Currency(currency)})
	}
	rows.Close()
	if rows.Err() != nil {
		log.Fatal().Err(rows.Err()).Msg("Customer read-back failed")
	}

	// Each customer gets one open invoice and a paid history, amounts in the
	// customer's own currency.
	invoiceRows := make([][]interface{}, 0, len(customers)*invoicesPerCustomer)
	for _, customer := range customers {
		for i := 0; i < invoicesPerCustomer; i++ {
			amount := decimal.NewFromFloat(10 + rng.Float64()*490).Round(2)
			status := domain.InvoiceStatusPaid
			if i == 0 {
				status = domain.InvoiceStatusPending
			}
			invoiceRows = append(invoiceRows, []interface{}{
				customer.ID,
				amount.String(),
				string(customer.Currency),
				string(status),
			})
		}
	}

	inserted, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"invoices"},
		[]string{"customer_id", "amount", "currency", "status"},
		pgx.CopyFromRows(invoiceRows),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Invoice bulk insert failed")
	}

	log.Info().
		Int("customers", len(customers)).
		Int64("invoices", inserted).
		Msg("Database seeded")
}
