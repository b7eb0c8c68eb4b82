package warehouse

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/sibylline/sibyl/pkg/utils/json"
)

// Tool names exposed to the SQL agent. The set mirrors the classic SQL
// database toolkit so models prompted on that convention work unchanged.
const (
	ToolListTables   = "sql_db_list_tables"
	ToolTableSchema  = "sql_db_schema"
	ToolQuery        = "sql_db_query"
	ToolQueryChecker = "sql_db_query_checker"
)

// Tools returns the SQL agent tool set backed by w. Database and guard
// failures come back as "Error: ..." observations so the model can read
// them and correct course instead of aborting the run.
func Tools(w *Warehouse) []tool.InvokableTool {
	return []tool.InvokableTool{
		&listTablesTool{w: w},
		&tableSchemaTool{w: w},
		&queryTool{w: w},
		&queryCheckerTool{},
	}
}

type listTablesTool struct {
	w *Warehouse
}

func (t *listTablesTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolListTables,
		Desc: "Input is an empty string, output is a comma-separated list of tables in the database.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"tool_input": {
				Type: schema.String,
				Desc: "An empty string",
			},
		}),
	}, nil
}

func (t *listTablesTool) InvokableRun(ctx context.Context, _ string, _ ...tool.Option) (string, error) {
	out, err := t.w.ListTables(ctx)
	if err != nil {
		return fmt.Sprintf("Error: %s", err), nil
	}
	return out, nil
}

type tableSchemaTool struct {
	w *Warehouse
}

func (t *tableSchemaTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolTableSchema,
		Desc: "Input is a comma-separated list of tables, output is the schema and sample rows for those tables. " +
			"Be sure the tables exist by calling sql_db_list_tables first.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"table_names": {
				Type:     schema.String,
				Desc:     "A comma-separated list of table names",
				Required: true,
			},
		}),
	}, nil
}

func (t *tableSchemaTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	names := stringArg(argumentsInJSON, "table_names")
	out, err := t.w.TableSchema(ctx, strings.Split(names, ","))
	if err != nil {
		return fmt.Sprintf("Error: %s", err), nil
	}
	return out, nil
}

type queryTool struct {
	w *Warehouse
}

func (t *queryTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolQuery,
		Desc: "Input is a detailed and correct SQL query, output is a result from the database. " +
			"If the query is not correct, an error message will be returned.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {
				Type:     schema.String,
				Desc:     "A single read-only SQL query",
				Required: true,
			},
		}),
	}, nil
}

func (t *queryTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	query := stringArg(argumentsInJSON, "query")
	out, err := t.w.Query(ctx, query)
	if err != nil {
		return fmt.Sprintf("Error: %s", err), nil
	}
	return out, nil
}

// queryCheckerTool statically reviews a query before execution: it
// enforces the read-only rule and rewrites the common NULL-comparison
// mistake, returning the corrected query text.
type queryCheckerTool struct{}

func (t *queryCheckerTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: ToolQueryChecker,
		Desc: "Use this tool to double check if your query is correct before executing it. " +
			"Always use this tool before executing a query with sql_db_query.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {
				Type:     schema.String,
				Desc:     "The SQL query to check",
				Required: true,
			},
		}),
	}, nil
}

var (
	notEqNullRe = regexp.MustCompile(`(?i)(!=|<>)\s*NULL`)
	eqNullRe    = regexp.MustCompile(`(?i)=\s*NULL`)
)

func (t *queryCheckerTool) InvokableRun(_ context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	query := stringArg(argumentsInJSON, "query")
	return CheckQuery(query), nil
}

// CheckQuery returns the corrected query, or an "Error: ..." message when
// the statement cannot be executed at all. Not-equals NULL comparisons
// must be rewritten before equals ones.
func CheckQuery(query string) string {
	q := strings.TrimSpace(query)
	if err := EnsureReadOnly(q); err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	q = notEqNullRe.ReplaceAllString(q, "IS NOT NULL")
	q = eqNullRe.ReplaceAllString(q, "IS NULL")
	return q
}

// stringArg pulls one string field out of a JSON argument payload. Bare
// text comes back unchanged because models sometimes skip the JSON shape.
func stringArg(argumentsInJSON, key string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(argumentsInJSON), &args); err != nil {
		return strings.TrimSpace(argumentsInJSON)
	}
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(argumentsInJSON)
}
