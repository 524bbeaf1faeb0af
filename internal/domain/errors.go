package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrTimeout is reported when the store does not answer before the request deadline.
	ErrTimeout = errors.New("DB timeout")

	ErrOrderCancelled    = errors.New("order is already cancelled")
	ErrOrderDelivered    = errors.New("delivered orders cannot be cancelled")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInsufficientStock = errors.New("insufficient stock")
)
