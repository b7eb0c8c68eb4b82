package qa

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sibylline/sibyl/internal/augur/service/llm"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider"
	"github.com/sibylline/sibyl/internal/augur/service/llm/provider/spi"
	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/service"
	"github.com/sibylline/sibyl/internal/augur/service/warehouse"
	"github.com/sibylline/sibyl/internal/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChatModel answers every turn with plain text and no tool calls, so
// the react loop terminates after a single model turn.
type fakeChatModel struct {
	reply string
}

func (f *fakeChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	sr, sw := schema.Pipe[*schema.Message](1)
	sw.Send(schema.AssistantMessage(f.reply, nil), nil)
	sw.Close()
	return sr, nil
}

func (f *fakeChatModel) WithTools(_ []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return f, nil
}

type fakeToolPlugin struct {
	reply string
}

func (p *fakeToolPlugin) Name() string { return "fake" }

func (p *fakeToolPlugin) BuildChatModel(_ context.Context, _ *options.ModelOptions) (model.BaseChatModel, error) {
	return &fakeChatModel{reply: p.reply}, nil
}

func newFakeLLM(t *testing.T, reply string) *llm.Module {
	t.Helper()

	outOfTree := provider.NewRegistry()
	outOfTree.MustRegister("fake", func() spi.ChatModelPlugin { return &fakeToolPlugin{reply: reply} })

	mod, err := (&llm.Config{
		Model:             &options.ModelOptions{Provider: "fake", Model: "fake-1"},
		OutOfTreeRegistry: outOfTree,
	}).Complete().New(context.Background())
	require.NoError(t, err)
	return mod
}

func newTestWarehouse(t *testing.T) *warehouse.Warehouse {
	t.Helper()

	wh, err := warehouse.Open(warehouse.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { wh.Close() })
	return wh
}

func TestCompleteFillsDefaults(t *testing.T) {
	cfg := (&Config{}).Complete()

	assert.Equal(t, "elastic", cfg.StoreType)
	assert.Equal(t, "http://localhost:9200", cfg.ElasticAddr)
	assert.Equal(t, "agent_traces", cfg.ElasticIndex)
	assert.Equal(t, 5, cfg.SingleAgentMaxTurns)
	assert.Equal(t, 15, cfg.SQLMaxTurns)
	assert.Equal(t, 5, cfg.AnalyticsMaxTurns)
	assert.Equal(t, 5, cfg.ReportingMaxTurns)
	assert.Equal(t, "generate", cfg.EarlyStopping)
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := (&Config{StoreType: "disabled"}).Complete().New(context.Background(), Dependencies{})
	require.Error(t, err)

	_, err = (&Config{StoreType: "disabled"}).Complete().
		New(context.Background(), Dependencies{LLM: newFakeLLM(t, "x")})
	require.Error(t, err)
}

func TestModuleAnswersThroughRealAgentLoop(t *testing.T) {
	cfg := &Config{StoreType: "inmemory"}
	mod, err := cfg.Complete().New(context.Background(), Dependencies{
		LLM:       newFakeLLM(t, "Germany has 11 customers."),
		Warehouse: newTestWarehouse(t),
	})
	require.NoError(t, err)
	defer mod.Close()

	res := mod.Service.Ask(context.Background(), "How many customers are from Germany?")
	require.NoError(t, res.Err)
	assert.Equal(t, "Germany has 11 customers.", res.Answer)
	assert.NotEmpty(t, res.RunID)

	h := mod.Service.Health(context.Background())
	assert.Equal(t, service.StoreStatusHealthy, h.Status)
	assert.Equal(t, "inmemory", h.Component)
}

func TestModulePipelineThroughRealAgentLoop(t *testing.T) {
	cfg := &Config{StoreType: "inmemory"}
	mod, err := cfg.Complete().New(context.Background(), Dependencies{
		LLM:       newFakeLLM(t, "stage result"),
		Warehouse: newTestWarehouse(t),
	})
	require.NoError(t, err)
	defer mod.Close()

	res := mod.Service.Pipeline(context.Background(), "Which country has the most customers?")
	require.NoError(t, res.Err)
	assert.Equal(t, "stage result", res.SQLFindings)
	assert.Equal(t, "stage result", res.FinalReport)
	assert.Equal(t, []string{"SQL Agent", "Analytics Agent", "Reporting Agent"}, res.AgentFlow)
}

func TestModuleDisabledStore(t *testing.T) {
	cfg := &Config{StoreType: "disabled"}
	mod, err := cfg.Complete().New(context.Background(), Dependencies{
		LLM:       newFakeLLM(t, "ok"),
		Warehouse: newTestWarehouse(t),
	})
	require.NoError(t, err)
	defer mod.Close()

	require.Nil(t, mod.Traces)

	h := mod.Service.Health(context.Background())
	assert.Equal(t, service.StoreStatusDisabled, h.Status)
	assert.Equal(t, "Elasticsearch client is not configured.", h.Info)
}

func TestModuleElasticFallsBackToDisabled(t *testing.T) {
	// Nothing listens on port 9; the probe fails fast and the module
	// degrades to disabled storage instead of failing startup.
	cfg := &Config{StoreType: "elastic", ElasticAddr: "http://127.0.0.1:9"}
	mod, err := cfg.Complete().New(context.Background(), Dependencies{
		LLM:       newFakeLLM(t, "ok"),
		Warehouse: newTestWarehouse(t),
	})
	require.NoError(t, err)
	defer mod.Close()

	assert.Nil(t, mod.Traces)

	res := mod.Service.Ask(context.Background(), "What is the average order value?")
	require.NoError(t, res.Err)
	assert.Equal(t, "ok", res.Answer)
}
