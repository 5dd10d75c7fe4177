package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"

	"storefront/internal/domain"
)

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
		Currency: currency.USD,
	}
}

func randomProduct(stock int64) domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(6),
		Price:       randomMoney(),
		Stock:       stock,
	}
}

func randomUser() domain.User {
	return domain.User{
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: gofakeit.UUID(),
		Role:         domain.RoleUser,
	}
}

// cmp options shared by the suites: decimals compare by value, currencies by
// ISO code.
func moneyCmpOpts() cmp.Options {
	return cmp.Options{
		cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		}),
		cmp.Comparer(func(x, y currency.Unit) bool {
			return x.String() == y.String()
		}),
	}
}

func assertMoney(t *testing.T, expected, actual domain.Money) {
	t.Helper()

	diff := cmp.Diff(expected, actual, moneyCmpOpts())
	assert.Empty(t, diff)
}
