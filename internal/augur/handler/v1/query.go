package v1

import (
	"errors"
	"fmt"

	"github.com/bytedance/gg/gptr"
	"github.com/gin-gonic/gin"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service"
	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
	"github.com/sibylline/sibyl/internal/pkg/core"
	"github.com/sibylline/sibyl/pkg/errorx"
)

// QueryHandler handles the question-answering REST API endpoints.
type QueryHandler struct {
	svc service.QAService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(svc service.QAService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

// Query handles POST /query. Agent failures are reported in the body
// with a 200 status; only malformed requests get an error status.
func (h *QueryHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind query request"), nil)
		return
	}

	res := h.svc.Ask(c.Request.Context(), req.Question)
	if errors.Is(res.Err, errno.ErrEmptyQuestion) {
		core.WriteResponse(c, errorx.WrapC(res.Err, ErrQuestionEmpty, "validate query request"), nil)
		return
	}

	resp := QueryResponse{Answer: res.Answer, RunID: res.RunID}
	if res.Err != nil {
		resp.Answer = ""
		resp.Error = gptr.Of(fmt.Sprintf("An error occurred: %s", res.Err))
	}
	core.WriteResponse(c, nil, resp)
}

// MultiAgentQuery handles POST /multi-agent-query. A failed pipeline
// returns empty stage outputs and an empty agent flow, not a partial
// trace of the stages that did run.
func (h *QueryHandler) MultiAgentQuery(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "bind multi-agent query request"), nil)
		return
	}

	res := h.svc.Pipeline(c.Request.Context(), req.Question)
	if errors.Is(res.Err, errno.ErrEmptyQuestion) {
		core.WriteResponse(c, errorx.WrapC(res.Err, ErrQuestionEmpty, "validate multi-agent query request"), nil)
		return
	}

	resp := MultiAgentQueryResponse{
		Question:          res.Question,
		SQLFindings:       res.SQLFindings,
		AnalyticsInsights: res.AnalyticsInsights,
		FinalReport:       res.FinalReport,
		AgentFlow:         res.AgentFlow,
		RunID:             res.RunID,
	}
	if res.Err != nil {
		resp.SQLFindings = ""
		resp.AnalyticsInsights = ""
		resp.FinalReport = ""
		resp.AgentFlow = []string{}
		resp.Error = gptr.Of(fmt.Sprintf("Multi-agent processing failed: %s", res.Err))
	}
	if resp.AgentFlow == nil {
		resp.AgentFlow = []string{}
	}
	core.WriteResponse(c, nil, resp)
}
