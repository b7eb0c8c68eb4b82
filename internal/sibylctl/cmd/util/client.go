package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sibylline/sibyl/pkg/utils/json"
)

// QueryResult is the body returned by POST /query.
type QueryResult struct {
	Answer string  `json:"answer"`
	RunID  string  `json:"run_id"`
	Error  *string `json:"error"`
}

// MultiAgentResult is the body returned by POST /multi-agent-query.
type MultiAgentResult struct {
	Question          string   `json:"question"`
	SQLFindings       string   `json:"sql_findings"`
	AnalyticsInsights string   `json:"analytics_insights"`
	FinalReport       string   `json:"final_report"`
	AgentFlow         []string `json:"agent_flow"`
	RunID             string   `json:"run_id"`
	Error             *string  `json:"error"`
}

// queryRequest is the request body for both query endpoints.
type queryRequest struct {
	Question string `json:"question"`
}

// AugurClient is the HTTP client for the sibyld query endpoints.
type AugurClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewAugurClient creates a new client. An empty token sends no
// Authorization header.
func NewAugurClient(baseURL, token string, httpClient *http.Client) *AugurClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 300 * time.Second}
	}

	return &AugurClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: httpClient,
	}
}

// Query sends a question to the single analyst agent.
func (c *AugurClient) Query(ctx context.Context, question string) (*QueryResult, error) {
	var out QueryResult
	if err := c.post(ctx, "/query", queryRequest{Question: question}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MultiAgentQuery sends a question through the three stage pipeline.
func (c *AugurClient) MultiAgentQuery(ctx context.Context, question string) (*MultiAgentResult, error) {
	var out MultiAgentResult
	if err := c.post(ctx, "/multi-agent-query", queryRequest{Question: question}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AugurClient) post(ctx context.Context, path string, reqBody, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
