package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPropertyNotFound = fmt.Errorf("property %w", ErrNotFound)
	ErrInquiryNotFound  = fmt.Errorf("inquiry %w", ErrNotFound)
	ErrContactNotFound  = fmt.Errorf("contact message %w", ErrNotFound)

	ErrUnauthenticated = errors.New("authentication required")
	ErrTokenInvalid    = fmt.Errorf("invalid or expired token: %w", ErrUnauthenticated)
	ErrForbidden       = errors.New("forbidden")

	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError - некорректный ввод с указанием поля
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// StoreError - сбой хранилища, не связанный с отсутствием записи
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
