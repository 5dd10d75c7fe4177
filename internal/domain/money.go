package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Mul scales the amount by a whole quantity, e.g. a unit price times an
// ordered count.
func (m Money) Mul(qty int64) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(qty)),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}

	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}{m.Amount, m.Currency.String()})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	unit, err := currency.ParseISO(raw.Currency)
	if err != nil {
		return fmt.Errorf("currency.ParseISO %q: %w", raw.Currency, err)
	}

	m.Amount = raw.Amount
	m.Currency = unit

	return nil
}
