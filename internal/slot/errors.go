package slot

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned by Read when the slot has never been written or was
// cleared. Callers treat it as "no value yet", not a failure.
var ErrEmpty = errors.New("slot is empty")

// SlotError represents a slot-specific error with a code and message.
// Codes mirror the domain error codes to avoid a circular import.
type SlotError struct {
	Code    string
	Message string
}

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

func (e *SlotError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for boundary mapping.
func (e *SlotError) ErrorCode() string {
	return e.Code
}

// ErrUnknownProvider is returned when configuration names a backend this
// build does not know.
func ErrUnknownProvider(provider string) error {
	return &SlotError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown slot provider: %q", provider),
	}
}

var (
	// ErrRedisAddrRequired is returned when the Redis backend is selected
	// without an address.
	ErrRedisAddrRequired = &SlotError{Code: codeInvalid, Message: "Redis address is required"}
)
