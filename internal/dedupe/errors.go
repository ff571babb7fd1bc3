package dedupe

import "errors"

var (
	// ErrInvalidInput marks malformed component sets or unknown identifiers.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUninitialized is returned when the expander has not been set up
	// (or has been torn down). No comparison is attempted.
	ErrUninitialized = errors.New("expander not initialized")

	// ErrInvalidOptions marks a threshold or weight configuration that
	// breaks the ordering rules.
	ErrInvalidOptions = errors.New("invalid duplicate options")
)
