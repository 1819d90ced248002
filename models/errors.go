package models

import "fmt"

// Error taxonomy shared by every controller. Controllers map these to
// HTTP status codes in one place instead of picking codes ad hoc.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, available: %d", e.Available)
}

type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "cart is empty"
}
