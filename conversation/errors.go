package conversation

import "errors"

// Sentinel errors for the conversation core.
//
// ErrEmptyInput is the only error a caller of Controller.Submit is expected
// to handle; the rest indicate a contract violation in the calling code.
var (
	ErrEmptyInput       = errors.New("empty input")
	ErrInvalidMessage   = errors.New("invalid message")
	ErrUnknownMessage   = errors.New("unknown message")
	ErrPrefixRegression = errors.New("visible prefix regression")
)
