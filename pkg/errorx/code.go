package errorx

import (
	"fmt"
	"net/http"
	"sync"
)

// Coder describes an error code with its HTTP mapping and user-safe message.
type Coder interface {
	// Code returns the integer business code.
	Code() int

	// HTTPStatus returns the HTTP status that should be used for this code.
	HTTPStatus() int

	// String returns the external, user-facing message.
	String() string

	// Reference returns a document link for the error, if any.
	Reference() string
}

type defaultCoder struct {
	code int
	http int
	msg  string
	ref  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) HTTPStatus() int   { return c.http }
func (c defaultCoder) String() string    { return c.msg }
func (c defaultCoder) Reference() string { return c.ref }

var (
	codeMu sync.Mutex
	codes  = map[int]Coder{}
)

// unknownCoder is returned for errors that carry no registered code.
var unknownCoder = defaultCoder{
	code: 1,
	http: http.StatusInternalServerError,
	msg:  "An internal server error occurred",
}

// Register registers a Coder, overwriting any existing entry for the code.
func Register(coder Coder) {
	if coder.Code() == 0 {
		panic("code '0' is reserved as unknown error code")
	}
	codeMu.Lock()
	defer codeMu.Unlock()
	codes[coder.Code()] = coder
}

// MustRegister registers a Coder and panics if the code is already taken.
func MustRegister(coder Coder) {
	if coder.Code() == 0 {
		panic("code '0' is reserved as unknown error code")
	}
	codeMu.Lock()
	defer codeMu.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code %d already registered", coder.Code()))
	}
	codes[coder.Code()] = coder
}

// ParseCoder resolves the Coder carried by err. Errors without a code
// resolve to the unknown coder; nil resolves to nil.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	if v, ok := err.(*withCode); ok {
		codeMu.Lock()
		defer codeMu.Unlock()
		if coder, ok := codes[v.code]; ok {
			return coder
		}
	}
	return unknownCoder
}

// IsCode reports whether any error in err's chain carries the given code.
func IsCode(err error, code int) bool {
	if v, ok := err.(*withCode); ok {
		if v.code == code {
			return true
		}
		if v.cause != nil {
			return IsCode(v.cause, code)
		}
	}
	return false
}
