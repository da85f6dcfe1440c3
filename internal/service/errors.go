package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned for a missing source key or an invalid source list.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSourceNotFound is returned when no live source has the requested key.
	ErrSourceNotFound = errors.New("source not found")
	// ErrSourceDisabled is returned for disabled sources, whatever the cache holds.
	ErrSourceDisabled = errors.New("source disabled")
)

// FetchError wraps a playlist fetch or parse failure. Cache and config are untouched when it is returned.
type FetchError struct {
	SourceKey string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.SourceKey, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
