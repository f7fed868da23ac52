package domain

import "errors"

var (
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrIndexOutOfRange   = errors.New("cart index out of range")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownStatus     = errors.New("unknown status")
)
