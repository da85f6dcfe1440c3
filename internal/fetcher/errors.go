package fetcher

import "fmt"

// ParseError reports a playlist body that could not be turned into channels.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return "parse m3u: " + e.msg }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

// StatusError reports a non-200 upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string { return fmt.Sprintf("HTTP %d", e.StatusCode) }
