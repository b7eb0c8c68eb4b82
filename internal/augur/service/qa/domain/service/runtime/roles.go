package runtime

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/sibylline/sibyl/pkg/utils/json"
)

// Agent type labels stored in the trace document's agent_type field.
const (
	AgentTypeSingle       = "single_agent"
	AgentTypeOrchestrator = "Orchestrator"
)

// Stage display names reported in the pipeline's agent_flow.
const (
	StageNameSQL       = "SQL Agent"
	StageNameAnalytics = "Analytics Agent"
	StageNameReporting = "Reporting Agent"
)

// Default turn budgets. The SQL stage gets the largest budget because
// schema exploration takes several round trips; the synthesis stages
// converge in one or two.
const (
	DefaultSingleAgentMaxTurns = 5
	DefaultSQLStageMaxTurns    = 15
	DefaultAnalyticsMaxTurns   = 5
	DefaultReportingMaxTurns   = 5
)

// analystPromptFormat wraps the user's question for the single agent.
const analystPromptFormat = "You are an expert business intelligence analyst. " +
	"Your goal is to provide concise, accurate, and actionable insights based on the user's question. " +
	"Here is the user's question: %s"

// Stage input templates. Each stage receives the previous stage's output,
// so data flows through the pipeline as plain text.
const (
	sqlStageInputFormat       = "Find data to answer: %s"
	analyticsStageInputFormat = "Analyze this data: %s"
	reportingStageInputFormat = "Create a business report from: SQL Data: %s Analytics: %s"
)

const sqlAgentSystemPrompt = `You are a SQL Database Expert Agent. Your role is to:
1. Explore database schemas and understand table structures
2. Execute SQL queries to retrieve data
3. Validate data quality and constraints
4. Return structured data for other agents to analyze

Always be precise with SQL syntax and provide clean, well-formatted results.
If you encounter an error, explain what went wrong and suggest alternatives.`

const analyticsAgentSystemPrompt = `You are a Data Analytics Expert Agent. Your role is to:
1. Analyze data provided by the SQL Agent
2. Calculate statistical insights and metrics
3. Identify trends, patterns, and anomalies
4. Provide quantitative analysis and comparisons

Focus on mathematical accuracy and provide actionable insights.
Always explain your analytical approach and reasoning.`

const reportingAgentSystemPrompt = `You are a Business Reporting Expert Agent. Your role is to:
1. Synthesize findings from SQL and Analytics agents
2. Create clear, executive-level summaries
3. Generate actionable business recommendations
4. Format insights for different audiences

Focus on clarity, business value, and actionable insights.
Use professional business language and structure.`

// formatterTool is a deterministic text tool that wraps its input in a
// fixed template. The analytics and reporting agents use these to shape
// their synthesis steps without reaching outside the process.
type formatterTool struct {
	name        string
	description string
	format      string
}

func (f *formatterTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: f.name,
		Desc: f.description,
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"input": {
				Type:     schema.String,
				Desc:     "The content to process",
				Required: true,
			},
		}),
	}, nil
}

func (f *formatterTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var args struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil || args.Input == "" {
		// Some models pass bare text instead of a JSON object.
		args.Input = argumentsInJSON
	}
	return fmt.Sprintf(f.format, args.Input), nil
}

// AnalyticsTools returns the analytics stage's tool set.
func AnalyticsTools() []tool.InvokableTool {
	return []tool.InvokableTool{
		&formatterTool{
			name:        "calculate_statistics",
			description: "Calculate statistical insights like averages, totals, distributions",
			format:      "Statistical analysis of: %s",
		},
		&formatterTool{
			name:        "identify_trends",
			description: "Identify trends, patterns, and anomalies in data",
			format:      "Trend analysis of: %s",
		},
		&formatterTool{
			name:        "compare_metrics",
			description: "Compare different metrics, KPIs, and performance indicators",
			format:      "Comparative analysis of: %s",
		},
	}
}

// ReportingTools returns the reporting stage's tool set.
func ReportingTools() []tool.InvokableTool {
	return []tool.InvokableTool{
		&formatterTool{
			name:        "create_executive_summary",
			description: "Create concise executive summaries of findings",
			format:      "Executive Summary: %s",
		},
		&formatterTool{
			name:        "format_insights",
			description: "Format data insights into readable reports",
			format:      "Formatted Report: %s",
		},
		&formatterTool{
			name:        "generate_recommendations",
			description: "Generate actionable business recommendations",
			format:      "Recommendations based on: %s",
		},
	}
}
