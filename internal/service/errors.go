package service

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNotAvailable  = errors.New("product not available")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrOrderNotFound        = errors.New("order not found")
	ErrPaymentNotConfigured = errors.New("payment gateway not configured")
	ErrPaymentFailed        = errors.New("payment session failed")
	ErrImportURLInvalid     = errors.New("import url invalid")
)
