package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"

	"storefront/internal/domain"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_users.up.sql",
			"../migrations/02_categories.up.sql",
			"../migrations/03_products.up.sql",
			"../migrations/04_cart_items.up.sql",
			"../migrations/05_orders.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func usd(units int64) domain.Money {
	return domain.Money{Amount: decimal.NewFromInt(units), Currency: currency.USD}
}

func productFixture(name string, price, stock int64) domain.Product {
	return domain.Product{
		Name:        name,
		Description: gofakeit.Sentence(5),
		Price:       usd(price),
		Stock:       stock,
	}
}

func assertAmount(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()

	if !actual.Equal(decimal.NewFromInt(expected)) {
		t.Errorf("amount mismatch: want %d, got %s", expected, actual)
	}
}
