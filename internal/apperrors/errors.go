// Package apperrors defines the error taxonomy shared by the domain and the
// HTTP layer. Every error here is request-scoped; nothing is retried.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("неавторизован")
	ErrForbidden    = errors.New("доступ запрещён")
	ErrNotFound     = errors.New("запись не найдена")
)

// InsufficientStockError identifies the first material of a movement or a
// consumption batch that the source location cannot cover. The ledger is
// guaranteed unchanged when it is returned.
type InsufficientStockError struct {
	MaterialID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("недостаточно материала id=%d", e.MaterialID)
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
