package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Error kinds. Every error produced by this module while reading, validating
// or writing images wraps exactly one of these, so callers can use errors.Is.
var (
	ErrMalformedHeader   = errors.New("malformed PPM image header")
	ErrTruncatedBody     = errors.New("corrupt PPM image body")
	ErrInvalidClutShape  = errors.New("CLUT image has wrong dimensions")
	ErrBadStream         = errors.New("bad stream")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Error is an error of a known Kind that remembers where it was raised.
// Cause, when set, is the lower level error that triggered it.
type Error struct {
	Kind  error
	Cause error
	Msg   string
	File  string
	Line  int
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Location returns the file:line the error was created at.
func (e *Error) Location() string {
	return fmt.Sprintf("%s:%d", e.File, e.Line)
}

// NewError creates an *Error of the given kind located at the caller.
func NewError(kind error, format string, args ...any) error {
	ans := &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), File: "???"}
	if _, file, line, ok := runtime.Caller(1); ok {
		ans.File, ans.Line = filepath.Base(file), line
	}
	return ans
}

// WrapError is NewError for failures caused by err, which stays reachable
// with errors.Is and errors.As.
func WrapError(kind, err error, format string, args ...any) error {
	ans := &Error{Kind: kind, Cause: err, Msg: fmt.Sprintf(format, args...), File: "???"}
	if _, file, line, ok := runtime.Caller(1); ok {
		ans.File, ans.Line = filepath.Base(file), line
	}
	return ans
}

// Located finds the first *Error in err's chain, if any.
func Located(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
