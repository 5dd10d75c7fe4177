package service

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidState    = errors.New("invalid state")
	ErrMixedCurrencies = errors.New("cart items have mixed currencies")
)
