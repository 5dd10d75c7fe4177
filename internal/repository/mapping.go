package repository

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"storefront/internal/domain"
)

// Monetary values travel as text: numeric columns are selected with ::text
// and parsed here, so no driver-level numeric codec is needed.
func parseMoney(amount, currencyCode string) (domain.Money, error) {
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}

	// CHAR(3) columns come back space-padded on some drivers
	parsedCurrency, err := currency.ParseISO(strings.TrimSpace(currencyCode))
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	return domain.Money{Amount: parsedAmount, Currency: parsedCurrency}, nil
}
