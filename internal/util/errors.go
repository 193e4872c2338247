// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrUserNotFound        = errors.New("user not found")
	ErrCreditLimitNotFound = errors.New("credit limit not found")
	ErrDuplicateEntry      = errors.New("duplicate entry") // Primary-key or unique-constraint collision
)

// IsError reports whether err matches the given sentinel error.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
