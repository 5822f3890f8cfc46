package order

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotPreparing      = errors.New("order can only be deleted while preparing")
	ErrEmptyGroup        = errors.New("no orders to complete")
	ErrInvalidPayment    = errors.New("unknown payment method")
)
