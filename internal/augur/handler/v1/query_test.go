package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service/runtime"
	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
)

type fakeQAService struct {
	ask      func(ctx context.Context, question string) *runtime.ExecuteResult
	pipeline func(ctx context.Context, question string) *runtime.PipelineResult
	health   func(ctx context.Context) *service.StoreHealth
}

func (f *fakeQAService) Ask(ctx context.Context, question string) *runtime.ExecuteResult {
	return f.ask(ctx, question)
}

func (f *fakeQAService) Pipeline(ctx context.Context, question string) *runtime.PipelineResult {
	return f.pipeline(ctx, question)
}

func (f *fakeQAService) Health(ctx context.Context) *service.StoreHealth {
	if f.health != nil {
		return f.health(ctx)
	}
	return &service.StoreHealth{Component: "elasticsearch", Status: service.StoreStatusDisabled, Info: "Elasticsearch client is not configured."}
}

func newTestRouter(svc service.QAService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	qh := NewQueryHandler(svc)
	hh := NewHealthHandler(svc)
	r.POST("/query", qh.Query)
	r.POST("/multi-agent-query", qh.MultiAgentQuery)
	r.GET("/healthz", hh.Healthz)
	r.GET("/version", hh.Version)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestQuerySuccess(t *testing.T) {
	svc := &fakeQAService{
		ask: func(_ context.Context, question string) *runtime.ExecuteResult {
			assert.Equal(t, "How many customers are from the USA?", question)
			return &runtime.ExecuteResult{RunID: "run-1", Answer: "There are 13 customers from the USA."}
		},
	}
	rec := postJSON(t, newTestRouter(svc), "/query", `{"question": "How many customers are from the USA?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	m := decodeBody(t, rec)
	assert.Equal(t, "There are 13 customers from the USA.", m["answer"])
	assert.Equal(t, "run-1", m["run_id"])

	// The error key is serialized as an explicit null on success.
	v, ok := m["error"]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestQueryAgentFailureReturns200(t *testing.T) {
	svc := &fakeQAService{
		ask: func(_ context.Context, _ string) *runtime.ExecuteResult {
			return &runtime.ExecuteResult{RunID: "run-2", Answer: "partial", Err: errors.New("model unreachable")}
		},
	}
	rec := postJSON(t, newTestRouter(svc), "/query", `{"question": "anything"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	m := decodeBody(t, rec)
	assert.Equal(t, "", m["answer"])
	assert.Equal(t, "run-2", m["run_id"])
	assert.Equal(t, "An error occurred: model unreachable", m["error"])
}

func TestQueryMissingQuestion(t *testing.T) {
	svc := &fakeQAService{
		ask: func(_ context.Context, _ string) *runtime.ExecuteResult {
			t.Fatal("service must not be called for an unbindable request")
			return nil
		},
	}
	r := newTestRouter(svc)

	for _, body := range []string{`{}`, `{"question": ""}`, `not json`} {
		rec := postJSON(t, r, "/query", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		m := decodeBody(t, rec)
		assert.Equal(t, float64(ErrBind), m["code"])
	}
}

func TestQueryWhitespaceQuestion(t *testing.T) {
	svc := &fakeQAService{
		ask: func(_ context.Context, _ string) *runtime.ExecuteResult {
			return &runtime.ExecuteResult{Err: errno.ErrEmptyQuestion}
		},
	}
	rec := postJSON(t, newTestRouter(svc), "/query", `{"question": "   "}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	m := decodeBody(t, rec)
	assert.Equal(t, float64(ErrQuestionEmpty), m["code"])
}

func TestMultiAgentQuerySuccess(t *testing.T) {
	svc := &fakeQAService{
		pipeline: func(_ context.Context, question string) *runtime.PipelineResult {
			return &runtime.PipelineResult{
				Question:          question,
				SQLFindings:       "13 rows",
				AnalyticsInsights: "USA leads",
				FinalReport:       "Executive Summary: USA leads with 13 customers.",
				AgentFlow:         []string{"SQL Agent", "Analytics Agent", "Reporting Agent"},
				RunID:             "run-3",
			}
		},
	}
	rec := postJSON(t, newTestRouter(svc), "/multi-agent-query", `{"question": "Which country leads?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	m := decodeBody(t, rec)
	assert.Equal(t, "Which country leads?", m["question"])
	assert.Equal(t, "13 rows", m["sql_findings"])
	assert.Equal(t, "USA leads", m["analytics_insights"])
	assert.Equal(t, "Executive Summary: USA leads with 13 customers.", m["final_report"])
	assert.Equal(t, []any{"SQL Agent", "Analytics Agent", "Reporting Agent"}, m["agent_flow"])
	assert.Equal(t, "run-3", m["run_id"])

	v, ok := m["error"]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestMultiAgentQueryFailureBlanksStages(t *testing.T) {
	svc := &fakeQAService{
		pipeline: func(_ context.Context, question string) *runtime.PipelineResult {
			// A pipeline that died mid-flight still carries the output of
			// the stages that ran; the wire response must not leak them.
			return &runtime.PipelineResult{
				Question:    question,
				SQLFindings: "13 rows",
				AgentFlow:   []string{"SQL Agent"},
				RunID:       "run-4",
				Err:         errors.New("analytics stage failed"),
			}
		},
	}
	rec := postJSON(t, newTestRouter(svc), "/multi-agent-query", `{"question": "Which country leads?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	m := decodeBody(t, rec)
	assert.Equal(t, "", m["sql_findings"])
	assert.Equal(t, "", m["analytics_insights"])
	assert.Equal(t, "", m["final_report"])
	assert.Equal(t, "run-4", m["run_id"])
	assert.Equal(t, "Multi-agent processing failed: analytics stage failed", m["error"])

	// agent_flow must serialize as [], not null.
	assert.Contains(t, rec.Body.String(), `"agent_flow":[]`)
}

func TestMultiAgentQueryNilFlowSerializesAsEmptyList(t *testing.T) {
	svc := &fakeQAService{
		pipeline: func(_ context.Context, question string) *runtime.PipelineResult {
			return &runtime.PipelineResult{Question: question, RunID: "run-5"}
		},
	}
	rec := postJSON(t, newTestRouter(svc), "/multi-agent-query", `{"question": "q"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"agent_flow":[]`)
}
