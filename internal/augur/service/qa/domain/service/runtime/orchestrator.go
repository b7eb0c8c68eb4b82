package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/repo"
	"github.com/sibylline/sibyl/pkg/logger"
)

// OrchestratorConfig bounds each pipeline stage's tool loop.
type OrchestratorConfig struct {
	SQLMaxTurns       int
	AnalyticsMaxTurns int
	ReportingMaxTurns int
}

// PipelineResult is the outcome of one pipeline run. On failure every
// stage output is empty and AgentFlow is empty; partial results never
// leak out. RunID is always set.
type PipelineResult struct {
	Question          string
	SQLFindings       string
	AnalyticsInsights string
	FinalReport       string
	AgentFlow         []string
	RunID             string
	Err               error
}

// Orchestrator chains three specialized agents: the SQL agent finds the
// data, the analytics agent interprets it, and the reporting agent turns
// the combined findings into a business report. All stages share one run
// and one recorder, so the stored trace holds the merged step log in
// stage order.
type Orchestrator struct {
	engine   Engine
	sqlTools []tool.InvokableTool
	traces   repo.TraceRepo
	cfg      OrchestratorConfig

	analyticsTools []tool.InvokableTool
	reportingTools []tool.InvokableTool
}

// NewOrchestrator creates an orchestrator. traces may be nil when trace
// storage is disabled.
func NewOrchestrator(engine Engine, sqlTools []tool.InvokableTool, traces repo.TraceRepo, cfg OrchestratorConfig) *Orchestrator {
	if cfg.SQLMaxTurns <= 0 {
		cfg.SQLMaxTurns = DefaultSQLStageMaxTurns
	}
	if cfg.AnalyticsMaxTurns <= 0 {
		cfg.AnalyticsMaxTurns = DefaultAnalyticsMaxTurns
	}
	if cfg.ReportingMaxTurns <= 0 {
		cfg.ReportingMaxTurns = DefaultReportingMaxTurns
	}
	return &Orchestrator{
		engine:         engine,
		sqlTools:       sqlTools,
		traces:         traces,
		cfg:            cfg,
		analyticsTools: AnalyticsTools(),
		reportingTools: ReportingTools(),
	}
}

// Process runs the three-stage pipeline on question. The trace is
// flushed exactly once on every path out of this method.
func (o *Orchestrator) Process(ctx context.Context, question string) *PipelineResult {
	run := entity.NewRun(question, AgentTypeOrchestrator)
	rec := NewRecorder(run, o.traces)
	defer rec.FlushFinal(ctx)

	res := &PipelineResult{
		Question:  question,
		RunID:     run.ID,
		AgentFlow: []string{},
	}

	logger.Info("[AgentFlow] SQL Agent processing: %s", question)
	sqlFindings, err := o.engine.Run(ctx, &EngineRequest{
		Role:          StageNameSQL,
		SystemPrompt:  sqlAgentSystemPrompt,
		Input:         fmt.Sprintf(sqlStageInputFormat, question),
		Tools:         o.sqlTools,
		MaxTurns:      o.cfg.SQLMaxTurns,
		EarlyStopping: EarlyStoppingForce,
		Events:        rec,
	})
	if err != nil {
		return o.fail(ctx, rec, res, err)
	}
	res.SQLFindings = sqlFindings

	logger.Info("[AgentFlow] Analytics Agent analyzing data...")
	analyticsInsights, err := o.engine.Run(ctx, &EngineRequest{
		Role:          StageNameAnalytics,
		SystemPrompt:  analyticsAgentSystemPrompt,
		Input:         fmt.Sprintf(analyticsStageInputFormat, sqlFindings),
		Tools:         o.analyticsTools,
		MaxTurns:      o.cfg.AnalyticsMaxTurns,
		EarlyStopping: EarlyStoppingForce,
		Events:        rec,
	})
	if err != nil {
		return o.fail(ctx, rec, res, err)
	}
	res.AnalyticsInsights = analyticsInsights

	logger.Info("[AgentFlow] Reporting Agent creating summary...")
	finalReport, err := o.engine.Run(ctx, &EngineRequest{
		Role:          StageNameReporting,
		SystemPrompt:  reportingAgentSystemPrompt,
		Input:         fmt.Sprintf(reportingStageInputFormat, sqlFindings, analyticsInsights),
		Tools:         o.reportingTools,
		MaxTurns:      o.cfg.ReportingMaxTurns,
		EarlyStopping: EarlyStoppingForce,
		Events:        rec,
	})
	if err != nil {
		return o.fail(ctx, rec, res, err)
	}
	res.FinalReport = finalReport
	res.AgentFlow = []string{StageNameSQL, StageNameAnalytics, StageNameReporting}

	rec.OnEvent(ctx, entity.FinishEvent{Output: finalReport, At: time.Now().UTC()})
	return res
}

// fail terminates the pipeline. Steps gathered so far stay in the trace,
// but stage outputs are cleared so callers never see a partial result.
func (o *Orchestrator) fail(ctx context.Context, rec *Recorder, res *PipelineResult, err error) *PipelineResult {
	logger.Error("Multi-agent processing failed: %v", err)
	rec.OnEvent(ctx, entity.ErrorEvent{Err: err, At: time.Now().UTC()})

	res.SQLFindings = ""
	res.AnalyticsInsights = ""
	res.FinalReport = ""
	res.AgentFlow = []string{}
	res.Err = err
	return res
}
