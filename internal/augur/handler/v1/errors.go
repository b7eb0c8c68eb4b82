package v1

import (
	"net/http"

	"github.com/sibylline/sibyl/pkg/errorx"
)

// Augur handler error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix (augur handler)
//   - XX: resource group (00=common, 01=query)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (100xxx).
	ErrBind       = 100001
	ErrValidation = 100002

	// Query errors (1001xx).
	ErrQuestionEmpty = 100101
)

func init() {
	// Common.
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Request validation failed"))

	// Query.
	errorx.MustRegister(newCoder(ErrQuestionEmpty, http.StatusBadRequest, "Question is required and must not be empty"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
