package source

import (
	"errors"
	"fmt"
)

// Failure kinds an adapter can report. The aggregator treats them all
// the same way (log, contribute nothing); the split exists so the
// diagnostics endpoint and the logs can say what actually went wrong.
var (
	ErrNetwork     = errors.New("network error")
	ErrParsing     = errors.New("parsing error")
	ErrNoResults   = errors.New("no results found")
	ErrUnavailable = errors.New("source unavailable")
)

// Error wraps an adapter failure with the board name and the failure
// kind so callers can use errors.Is against the sentinels above.
type Error struct {
	Source string
	Kind   error
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Source, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Kind }

func NetworkErr(src string, err error) error {
	return &Error{Source: src, Kind: ErrNetwork, Err: err}
}

func ParseErr(src string, err error) error {
	return &Error{Source: src, Kind: ErrParsing, Err: err}
}

func UnavailableErr(src string, err error) error {
	return &Error{Source: src, Kind: ErrUnavailable, Err: err}
}
