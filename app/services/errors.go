package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/lodge/pkg/validate"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrBelowMinimumDeposit = errors.New("minimum deposit amount is $10")
	ErrTrackingRequired    = errors.New("tracking number is required")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidCategory     = errors.New("category does not exist")
)

// ValidationError reports invalid input field by field. Nothing has been
// written when a service returns it.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func checkInput(v interface{}) error {
	if errs := validate.Struct(v); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func fieldError(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// notFound turns gorm's missing-row error into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
