package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrProvider marks a failed text generation call (network, HTTP status, timeout, empty answer).
	ErrProvider = errors.New("provider request failed")
	// ErrProviderDisabled is returned when no provider is configured.
	ErrProviderDisabled = fmt.Errorf("%w: provider disabled", ErrProvider)
	// ErrParse marks provider output that does not have the expected shape.
	ErrParse = errors.New("provider output could not be parsed")
)

// Reason classifies an error for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrProviderDisabled):
		return "disabled"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrProvider):
		return "provider"
	default:
		return "other"
	}
}
