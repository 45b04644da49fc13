package service

import (
	"errors"
	"fmt"

	"go-3pl-warehouse/pkg/validator"

	"gorm.io/gorm"
)

// Error kinds. Handlers map these to HTTP statuses.
var (
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrUnauthorized          = errors.New("unauthorized")
)

// Error carries a message safe to show to API callers alongside its kind
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) error {
	return newError(ErrValidation, format, args...)
}

func notFound(entity string) error {
	return newError(ErrNotFound, "%s not found", entity)
}

// validate runs struct tags and reports the first failure as a validation error
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return validationError("%s", errs[0].Message())
	}
	return nil
}

// lookupError turns gorm's missing-row error into a not-found for entity
func lookupError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}

// taken reports whether a uniqueness lookup found a row
func taken(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
