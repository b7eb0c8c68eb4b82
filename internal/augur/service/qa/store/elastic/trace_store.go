// Package elastic persists trace documents to an Elasticsearch index
// over its plain HTTP document API. Only two calls are needed (PUT by id
// and the root info probe), so no client library is pulled in.
package elastic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/pkg/utils/json"
)

const (
	// DefaultIndex is the index traces are written to.
	DefaultIndex = "agent_traces"

	defaultTimeout = 10 * time.Second
)

// Config configures the elasticsearch trace store.
type Config struct {
	// Addr is the base URL, e.g. "http://elasticsearch:9200".
	Addr string

	// Index defaults to DefaultIndex when empty.
	Index string

	// APIKey, when set, is sent as "Authorization: ApiKey <key>".
	APIKey string

	// Refresh controls index refresh behavior per write:
	// "", "true", "false" or "wait_for".
	Refresh string

	// Timeout bounds each HTTP call.
	Timeout time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// TraceStore writes trace documents with the run id as document id, so a
// rewrite of the same run overwrites instead of duplicating.
type TraceStore struct {
	addr    string
	index   string
	apiKey  string
	refresh string
	client  *http.Client
}

// NewTraceStore validates the config and returns a store. It performs no
// network I/O; reachability is checked by Info.
func NewTraceStore(cfg Config) (*TraceStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("elasticsearch addr is required")
	}
	switch cfg.Refresh {
	case "", "true", "false", "wait_for":
	default:
		return nil, fmt.Errorf("invalid refresh policy: %s (must be one of: true, false, wait_for)", cfg.Refresh)
	}
	index := cfg.Index
	if index == "" {
		index = DefaultIndex
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &TraceStore{
		addr:    strings.TrimRight(cfg.Addr, "/"),
		index:   index,
		apiKey:  cfg.APIKey,
		refresh: cfg.Refresh,
		client:  client,
	}, nil
}

func (s *TraceStore) Upsert(ctx context.Context, doc *entity.TraceDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/_doc/%s", s.addr, url.PathEscape(s.index), url.PathEscape(doc.RunID))
	if s.refresh != "" {
		params := url.Values{}
		params.Set("refresh", s.refresh)
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build index request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("index request returned %d: %s", resp.StatusCode, readBodySnippet(resp.Body))
	}
	return nil
}

// Info hits the cluster root endpoint, the same probe the official
// clients use for their info() call.
func (s *TraceStore) Info(ctx context.Context) (*repo.StoreInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.addr+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build info request: %w", err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("info request returned %d: %s", resp.StatusCode, readBodySnippet(resp.Body))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read info response: %w", err)
	}

	var info struct {
		ClusterName string `json:"cluster_name"`
		Version     struct {
			Number string `json:"number"`
		} `json:"version"`
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse info response: %w", err)
	}

	return &repo.StoreInfo{
		Kind:        "elasticsearch",
		ClusterName: info.ClusterName,
		Version:     info.Version.Number,
	}, nil
}

func (s *TraceStore) Close() error { return nil }

func (s *TraceStore) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+s.apiKey)
	}
}

func readBodySnippet(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(data) == 0 {
		return "<no body>"
	}
	return string(data)
}
