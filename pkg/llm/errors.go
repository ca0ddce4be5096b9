package llm

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrAPIStatus matches any StatusError.
	ErrAPIStatus = errors.New("model API returned an error status")
	// ErrEmptyResponse means the reply held no text or an empty document.
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrParse matches any ParseError.
	ErrParse = errors.New("failed to parse model reply")
	// ErrNotMapping means the reply parsed but is not a mapping at the top level.
	ErrNotMapping = errors.New("model reply is not a mapping")
)

// StatusError is a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() (msg string) {
	msg = fmt.Sprintf("%s (%d)", ErrAPIStatus.Error(), e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target is ErrAPIStatus.
func (e *StatusError) Is(target error) (ok bool) {
	ok = target == ErrAPIStatus
	return ok
}

// ParseError wraps a YAML syntax error in the model reply.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() (msg string) {
	msg = fmt.Sprintf("%s: %v", ErrParse.Error(), e.Err)
	return msg
}

func (e *ParseError) Unwrap() (err error) {
	err = e.Err
	return err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) (ok bool) {
	ok = target == ErrParse
	return ok
}
