// Package errorx provides coded errors that map cleanly onto HTTP
// responses. Handlers register Coders in init() and wrap failures with
// WrapC / WithCode; core.WriteResponse resolves the code at the edge.
package errorx

import "fmt"

type withCode struct {
	err   error
	code  int
	cause error
}

// WithCode creates a coded error from a format string.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		err:  fmt.Errorf(format, args...),
		code: code,
	}
}

// WrapC wraps an existing error with a code and a contextual message.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{
		err:   fmt.Errorf(format, args...),
		code:  code,
		cause: err,
	}
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s: %s", w.err.Error(), w.cause.Error())
	}
	return w.err.Error()
}

// Unwrap supports errors.Is / errors.As over the cause chain.
func (w *withCode) Unwrap() error { return w.cause }
