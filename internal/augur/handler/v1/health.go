package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service"
	"github.com/sibylline/sibyl/pkg/version"
)

// HealthHandler handles service health and version endpoints.
type HealthHandler struct {
	svc service.QAService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(svc service.QAService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Healthz handles GET /healthz. It always answers 200; a degraded or
// unconfigured trace store is reported per service, not as a request
// failure.
func (h *HealthHandler) Healthz(c *gin.Context) {
	sh := h.svc.Health(c.Request.Context())
	c.JSON(http.StatusOK, HealthzResponse{
		Status: "ok",
		Services: map[string]ServiceHealth{
			sh.Component: {Status: sh.Status, Info: sh.Info},
		},
	})
}

// Version handles GET /version.
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
