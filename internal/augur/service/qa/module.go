package qa

import (
	"context"
	"fmt"

	"github.com/sibylline/sibyl/internal/augur/service/llm"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service/runtime"
	boltdbStore "github.com/sibylline/sibyl/internal/augur/service/qa/store/boltdb"
	elasticStore "github.com/sibylline/sibyl/internal/augur/service/qa/store/elastic"
	"github.com/sibylline/sibyl/internal/augur/service/qa/store/inmemory"
	"github.com/sibylline/sibyl/internal/augur/service/warehouse"
	"github.com/sibylline/sibyl/pkg/logger"
)

// Config holds the configuration for the QA module.
// Follows K8S-style: Config → Complete() → New(ctx, deps).
type Config struct {
	// StoreType selects the trace persistence backend:
	// "elastic", "boltdb", "inmemory" or "disabled".
	// Default: "elastic".
	StoreType string `json:"store_type,omitempty"`

	// ElasticAddr is the Elasticsearch base URL (when StoreType="elastic").
	// Default: "http://localhost:9200".
	ElasticAddr string `json:"elastic_addr,omitempty"`

	// ElasticIndex is the index traces are written to. Default: "agent_traces".
	ElasticIndex string `json:"elastic_index,omitempty"`

	// ElasticAPIKey, when set, authenticates writes and probes.
	ElasticAPIKey string `json:"elastic_api_key,omitempty"`

	// ElasticRefresh is the per-write refresh policy: "", "true", "false"
	// or "wait_for". Default: "" (index-default refresh).
	ElasticRefresh string `json:"elastic_refresh,omitempty"`

	// BoltDBPath is the file path for BoltDB storage (when StoreType="boltdb").
	// Default: "data/sibyl.db".
	BoltDBPath string `json:"boltdb_path,omitempty"`

	// SingleAgentMaxTurns bounds the analyst agent's tool loop (default: 5).
	SingleAgentMaxTurns int `json:"single_agent_max_turns,omitempty"`

	// SQLMaxTurns bounds the pipeline SQL stage (default: 15).
	SQLMaxTurns int `json:"sql_max_turns,omitempty"`

	// AnalyticsMaxTurns bounds the pipeline analytics stage (default: 5).
	AnalyticsMaxTurns int `json:"analytics_max_turns,omitempty"`

	// ReportingMaxTurns bounds the pipeline reporting stage (default: 5).
	ReportingMaxTurns int `json:"reporting_max_turns,omitempty"`

	// EarlyStopping selects the single agent's ceiling policy:
	// "generate" (one final tool-free completion) or "force" (canned text).
	// Default: "generate".
	EarlyStopping string `json:"early_stopping,omitempty"`
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete validates and fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.StoreType == "" {
		c.StoreType = "elastic"
	}
	if c.ElasticAddr == "" {
		c.ElasticAddr = "http://localhost:9200"
	}
	if c.ElasticIndex == "" {
		c.ElasticIndex = elasticStore.DefaultIndex
	}
	if c.BoltDBPath == "" {
		c.BoltDBPath = "data/sibyl.db"
	}
	if c.SingleAgentMaxTurns <= 0 {
		c.SingleAgentMaxTurns = runtime.DefaultSingleAgentMaxTurns
	}
	if c.SQLMaxTurns <= 0 {
		c.SQLMaxTurns = runtime.DefaultSQLStageMaxTurns
	}
	if c.AnalyticsMaxTurns <= 0 {
		c.AnalyticsMaxTurns = runtime.DefaultAnalyticsMaxTurns
	}
	if c.ReportingMaxTurns <= 0 {
		c.ReportingMaxTurns = runtime.DefaultReportingMaxTurns
	}
	if c.EarlyStopping == "" {
		c.EarlyStopping = runtime.EarlyStoppingGenerate
	}
	return CompletedConfig{c}
}

// Dependencies holds the external modules required by the QA module.
type Dependencies struct {
	LLM       *llm.Module
	Warehouse *warehouse.Warehouse
}

// Module is the top-level QA module.
//
// It exposes:
//   - Service: question answering + pipeline + health
//   - Traces: the trace repo, nil when storage is disabled
type Module struct {
	Service service.QAService
	Traces  repo.TraceRepo
	boltDB  *boltdbStore.DB // nil unless StoreType="boltdb"
}

// Close releases resources held by the module (e.g., the BoltDB handle).
func (m *Module) Close() error {
	if m.boltDB != nil {
		return m.boltDB.Close()
	}
	if m.Traces != nil {
		return m.Traces.Close()
	}
	return nil
}

// New creates and initializes the QA module from a completed config.
func (c CompletedConfig) New(ctx context.Context, deps Dependencies) (*Module, error) {
	logger.Info("[QA] creating QA module...")

	if deps.LLM == nil {
		return nil, fmt.Errorf("LLM module dependency is required")
	}
	if deps.Warehouse == nil {
		return nil, fmt.Errorf("warehouse dependency is required")
	}

	traces, boltDB := c.buildTraceRepo(ctx)

	chatModel, err := deps.LLM.BuildChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build chat model: %w", err)
	}
	engine, err := runtime.NewEinoEngine(chatModel)
	if err != nil {
		return nil, err
	}

	sqlTools := warehouse.Tools(deps.Warehouse)

	executor := runtime.NewExecutor(engine, sqlTools, traces, runtime.ExecutorConfig{
		MaxTurns:      c.SingleAgentMaxTurns,
		EarlyStopping: c.EarlyStopping,
	})
	orchestrator := runtime.NewOrchestrator(engine, sqlTools, traces, runtime.OrchestratorConfig{
		SQLMaxTurns:       c.SQLMaxTurns,
		AnalyticsMaxTurns: c.AnalyticsMaxTurns,
		ReportingMaxTurns: c.ReportingMaxTurns,
	})

	svc := service.NewQAService(executor, orchestrator, traces, storeComponent(c.StoreType))

	logger.Info("[QA] QA module initialized (store=%s, max_turns=%d, pipeline_turns=%d/%d/%d)",
		c.StoreType, c.SingleAgentMaxTurns, c.SQLMaxTurns, c.AnalyticsMaxTurns, c.ReportingMaxTurns)

	return &Module{
		Service: svc,
		Traces:  traces,
		boltDB:  boltDB,
	}, nil
}

// buildTraceRepo selects the persistence backend. Construction failures
// degrade to disabled storage instead of failing the server; answering
// questions does not depend on trace persistence.
func (c CompletedConfig) buildTraceRepo(ctx context.Context) (repo.TraceRepo, *boltdbStore.DB) {
	switch c.StoreType {
	case "elastic":
		store, err := elasticStore.NewTraceStore(elasticStore.Config{
			Addr:    c.ElasticAddr,
			Index:   c.ElasticIndex,
			APIKey:  c.ElasticAPIKey,
			Refresh: c.ElasticRefresh,
		})
		if err != nil {
			logger.Warn("Could not configure Elasticsearch client: %v", err)
			return nil, nil
		}
		info, err := store.Info(ctx)
		if err != nil {
			logger.Warn("Could not configure Elasticsearch client: %v", err)
			return nil, nil
		}
		logger.Info("[QA] using elasticsearch trace store at %s (cluster %q, version %s)",
			c.ElasticAddr, info.ClusterName, info.Version)
		return store, nil
	case "boltdb":
		db, err := boltdbStore.Open(c.BoltDBPath)
		if err != nil {
			logger.Warn("[QA] failed to open boltdb at %s, trace storage disabled: %v", c.BoltDBPath, err)
			return nil, nil
		}
		logger.Info("[QA] using BoltDB trace store at %s", c.BoltDBPath)
		return boltdbStore.NewTraceStore(db), db
	case "inmemory":
		logger.Info("[QA] using in-memory trace store")
		return inmemory.NewTraceStore(), nil
	default:
		logger.Info("[QA] trace storage disabled")
		return nil, nil
	}
}

// storeComponent names the backend in the health services map.
func storeComponent(storeType string) string {
	switch storeType {
	case "boltdb", "inmemory":
		return storeType
	default:
		return "elasticsearch"
	}
}
