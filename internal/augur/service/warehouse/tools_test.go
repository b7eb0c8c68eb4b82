package warehouse

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsExposeToolkitNames(t *testing.T) {
	w := openTestWarehouse(t)
	tools := Tools(w)
	require.Len(t, tools, 4)

	var names []string
	for _, tl := range tools {
		info, err := tl.Info(context.Background())
		require.NoError(t, err)
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, names, []string{
		"sql_db_list_tables", "sql_db_schema", "sql_db_query", "sql_db_query_checker",
	})
}

func TestListTablesTool(t *testing.T) {
	w := openTestWarehouse(t)
	tl := &listTablesTool{w: w}

	out, err := tl.InvokableRun(context.Background(), `{"tool_input":""}`)
	require.NoError(t, err)
	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "order_details")
}

func TestTableSchemaToolParsesTableNames(t *testing.T) {
	w := openTestWarehouse(t)
	tl := &tableSchemaTool{w: w}

	out, err := tl.InvokableRun(context.Background(), `{"table_names":"customers, orders"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE customers")
	assert.Contains(t, out, "CREATE TABLE orders")

	out, err = tl.InvokableRun(context.Background(), `{"table_names":"nope"}`)
	require.NoError(t, err, "unknown tables become error observations, not run failures")
	assert.True(t, strings.HasPrefix(out, "Error: "), "got %q", out)
}

func TestQueryToolReturnsErrorObservations(t *testing.T) {
	w := openTestWarehouse(t)
	tl := &queryTool{w: w}
	ctx := context.Background()

	out, err := tl.InvokableRun(ctx, `{"query":"SELECT COUNT(*) FROM customers WHERE country = 'Germany'"}`)
	require.NoError(t, err)
	assert.Equal(t, "[(11,)]", out)

	out, err = tl.InvokableRun(ctx, `{"query":"SELECT nope FROM customers"}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error: "), "got %q", out)

	out, err = tl.InvokableRun(ctx, `{"query":"DROP TABLE customers"}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error: "), "got %q", out)
}

func TestQueryToolAcceptsBareSQL(t *testing.T) {
	w := openTestWarehouse(t)
	tl := &queryTool{w: w}

	out, err := tl.InvokableRun(context.Background(), "SELECT COUNT(*) FROM employees")
	require.NoError(t, err)
	assert.Equal(t, "[(9,)]", out)
}

func TestCheckQuery(t *testing.T) {
	assert.Equal(t, "SELECT 1", CheckQuery("  SELECT 1  "))
	assert.Equal(t,
		"SELECT * FROM orders WHERE customer_id IS NULL",
		CheckQuery("SELECT * FROM orders WHERE customer_id = NULL"))
	assert.Equal(t,
		"SELECT * FROM orders WHERE customer_id IS NOT NULL",
		CheckQuery("SELECT * FROM orders WHERE customer_id != NULL"))
	assert.Equal(t,
		"SELECT * FROM orders WHERE customer_id IS NOT NULL",
		CheckQuery("SELECT * FROM orders WHERE customer_id <> NULL"))

	out := CheckQuery("DELETE FROM orders")
	assert.True(t, strings.HasPrefix(out, "Error: "), "got %q", out)
}

func TestQueryCheckerTool(t *testing.T) {
	tl := &queryCheckerTool{}
	out, err := tl.InvokableRun(context.Background(), `{"query":"SELECT * FROM x WHERE y = NULL"}`)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM x WHERE y IS NULL", out)
}
