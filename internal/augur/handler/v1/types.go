package v1

// QueryRequest is the body for POST /query and POST /multi-agent-query.
type QueryRequest struct {
	Question string `json:"question" binding:"required"`
}

// QueryResponse is the reply for POST /query. Error is an explicit null
// on success so clients can test it without a key-presence check.
type QueryResponse struct {
	Answer string  `json:"answer"`
	RunID  string  `json:"run_id"`
	Error  *string `json:"error"`
}

// MultiAgentQueryResponse is the reply for POST /multi-agent-query. On
// failure the stage outputs are empty and AgentFlow is an empty list,
// never a partial one.
type MultiAgentQueryResponse struct {
	Question          string   `json:"question"`
	SQLFindings       string   `json:"sql_findings"`
	AnalyticsInsights string   `json:"analytics_insights"`
	FinalReport       string   `json:"final_report"`
	AgentFlow         []string `json:"agent_flow"`
	RunID             string   `json:"run_id"`
	Error             *string  `json:"error"`
}

// ServiceHealth is one entry in the healthz services map.
type ServiceHealth struct {
	Status string `json:"status"`
	Info   any    `json:"info"`
}

// HealthzResponse is the reply for GET /healthz. The endpoint always
// answers 200; degraded dependencies surface in Services.
type HealthzResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceHealth `json:"services"`
}
