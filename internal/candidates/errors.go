// Package candidates generates diverse sets of dishes that maximize total rating
// under nutrient bounds. Each round solves a binary program over the dishes
// still in the working pool and removes the chosen dishes before the next
// round, so the returned sets are pairwise disjoint.
package candidates

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is the sentinel wrapped by every ConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigurationError reports request parameters that are rejected before any solve
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}
