// Package core holds the shared HTTP response envelope.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibylline/sibyl/pkg/errorx"
	"github.com/sibylline/sibyl/pkg/logger"
)

// ErrResponse is the body returned whenever a handler fails. Reference
// is omitted when the coder has none.
type ErrResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}

// WriteResponse writes either an error envelope resolved through the
// errorx coder registry, or the success payload as-is.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		logger.Error("%#+v", err)
		coder := errorx.ParseCoder(err)
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Reference: coder.Reference(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
