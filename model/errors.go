package model

import (
	"github.com/pkg/errors"
)

// Error classes. Every configuration or data problem returned by this module
// wraps one of these, so callers can test with errors.Is.
var (
	// ErrConfiguration marks a fatal setup problem: a malformed edge index,
	// a bad prior vector, or an invalid run configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrData marks input data that can not be standardized
	ErrData = errors.New("data error")
)

// ConfigErrorf returns an ErrConfiguration with the given context
func ConfigErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

// DataErrorf returns an ErrData with the given context
func DataErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrData, format, args...)
}
