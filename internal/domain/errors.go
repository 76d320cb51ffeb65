package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError reports bad input shape or range, detected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a duplicate active reservation slot.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// ForbiddenTransitionError reports a role/state mismatch on a lifecycle move.
type ForbiddenTransitionError struct {
	Role Role
	From string
	To   string
}

func (e *ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("%s may not transition %s -> %s", e.Role, e.From, e.To)
}

// ItemUnavailableError names the menu item that blocked a checkout.
type ItemUnavailableError struct {
	MenuItemID int64
	Name       string
}

func (e *ItemUnavailableError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("menu item %q (id %d) is not available", e.Name, e.MenuItemID)
	}
	return fmt.Sprintf("menu item %d is not available", e.MenuItemID)
}

// CheckoutFailedError wraps a persistence failure during the atomic commit.
// The cart is left untouched so the customer can retry.
type CheckoutFailedError struct {
	Cause error
}

func (e *CheckoutFailedError) Error() string {
	return fmt.Sprintf("checkout failed: %v", e.Cause)
}

func (e *CheckoutFailedError) Unwrap() error { return e.Cause }
