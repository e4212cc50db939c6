package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrMissingCode          = errors.New("verification code is required")
	ErrAccountNotFound      = errors.New("points account not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrNoContactHandle      = errors.New("no contact handle on file")
	ErrMisconfiguredProduct = errors.New("product has no valid points cost")

	// Verification code consumption outcomes. NotFound means no live code for
	// the handle, Expired means the code aged out (and is gone), Mismatch means
	// a wrong code was supplied (the stored code stays live for a retry).
	ErrCodeNotFound = errors.New("verification code not found, request a new one")
	ErrCodeExpired  = errors.New("verification code has expired, request a new one")
	ErrCodeMismatch = errors.New("verification code does not match")
)

// InsufficientBalanceError carries the balance shortfall for a user-facing
// message. The failed debit leaves no mutation behind.
type InsufficientBalanceError struct {
	Balance  int32
	Required int32
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: have %d points, need %d", e.Balance, e.Required)
}

// InsufficientStockError carries the stock shortfall observed at check time.
type InsufficientStockError struct {
	Stock    int32
	Required int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: %d available, %d requested", e.Stock, e.Required)
}

// QuotaExceededError carries the monthly usage detail, including how many
// redemptions remain this month.
type QuotaExceededError struct {
	Used      int32
	Limit     int32
	Remaining int32
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly limit exceeded: %d of %d used this month, %d remaining", e.Used, e.Limit, e.Remaining)
}
