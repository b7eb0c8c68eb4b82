package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sibylline/sibyl/internal/augur/service/qa/pkg/errno"
	"github.com/sibylline/sibyl/pkg/logger"
)

// Config holds warehouse connection settings.
type Config struct {
	// Path is the sqlite database file. Empty or ":memory:" opens an
	// in-memory database seeded with the sample sales dataset.
	Path string

	// MaxOpenConns caps the connection pool. In-memory databases are
	// pinned to a single connection because every new connection would
	// otherwise see a fresh empty database.
	MaxOpenConns int
}

// Warehouse is the analytical database the SQL agent queries. It exposes
// the same read-only surface the agent tools need: table listing, schema
// inspection and query execution.
type Warehouse struct {
	db *sql.DB
}

var errMultipleStatements = errors.New("multiple SQL statements are not allowed")

// Open connects to the warehouse and seeds the sample dataset when the
// database is empty.
func Open(cfg Config) (*Warehouse, error) {
	connStr := cfg.Path
	if connStr == "" {
		connStr = ":memory:"
	}
	inMemory := connStr == ":memory:"
	if !inMemory {
		connStr += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse database: %w", err)
	}

	maxConns := cfg.MaxOpenConns
	if inMemory || maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to warehouse database: %w", err)
	}

	w := &Warehouse{db: db}

	seeded, err := w.hasTables(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !seeded {
		if err := w.seed(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed warehouse: %w", err)
		}
		logger.Info("[Warehouse] seeded sample sales dataset at %s", connStr)
	}

	return w, nil
}

func (w *Warehouse) hasTables(ctx context.Context) (bool, error) {
	var n int
	err := w.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'customers'`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect warehouse schema: %w", err)
	}
	return n > 0, nil
}

// Close closes the underlying database.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

// DB exposes the underlying handle for tests.
func (w *Warehouse) DB() *sql.DB {
	return w.db
}

// ListTables returns the warehouse tables as a comma-separated list in
// name order.
func (w *Warehouse) ListTables(ctx context.Context) (string, error) {
	rows, err := w.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return "", fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	return strings.Join(names, ", "), rows.Err()
}

// TableSchema returns the DDL plus three sample rows for each requested
// table, the shape a model needs to write correct queries.
func (w *Warehouse) TableSchema(ctx context.Context, tableNames []string) (string, error) {
	var out strings.Builder
	for i, name := range tableNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var ddl string
		err := w.db.QueryRowContext(ctx,
			`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&ddl)
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("table '%s' not found in database", name)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read schema for %s: %w", name, err)
		}

		if i > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(ddl)

		sample, err := w.sampleRows(ctx, name)
		if err != nil {
			return "", err
		}
		out.WriteString("\n\n/*\n3 rows from " + name + " table:\n")
		out.WriteString(sample)
		out.WriteString("*/")
	}
	return out.String(), nil
}

func (w *Warehouse) sampleRows(ctx context.Context, table string) (string, error) {
	// Table name comes from sqlite_master, not user input.
	rows, err := w.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q LIMIT 3", table))
	if err != nil {
		return "", fmt.Errorf("failed to sample %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(strings.Join(cols, "\t"))
	out.WriteString("\n")

	scanned, err := scanAll(rows, len(cols))
	if err != nil {
		return "", err
	}
	for _, row := range scanned {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = renderBare(v)
		}
		out.WriteString(strings.Join(cells, "\t"))
		out.WriteString("\n")
	}
	return out.String(), nil
}

// Query runs a read-only statement and renders the result rows as a list
// of tuples, the textual shape the agents reason over. Write statements
// are rejected before touching the database.
func (w *Warehouse) Query(ctx context.Context, query string) (string, error) {
	if err := EnsureReadOnly(query); err != nil {
		return "", err
	}

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}
	scanned, err := scanAll(rows, len(cols))
	if err != nil {
		return "", err
	}
	return renderRows(scanned), rows.Err()
}

// EnsureReadOnly rejects anything that is not a single SELECT (or WITH)
// statement. Comments ahead of the statement are ignored.
func EnsureReadOnly(query string) error {
	q := stripLeadingComments(query)
	if q == "" {
		return errno.ErrQueryNotReadOnly
	}

	trimmed := strings.TrimRight(q, " \t\r\n;")
	if strings.Contains(trimmed, ";") {
		return errMultipleStatements
	}

	head := strings.TrimLeft(strings.ToLower(trimmed), "( \t\r\n")
	if strings.HasPrefix(head, "select") || strings.HasPrefix(head, "with") {
		return nil
	}
	return errno.ErrQueryNotReadOnly
}

func stripLeadingComments(query string) string {
	q := query
	for {
		q = strings.TrimSpace(q)
		switch {
		case strings.HasPrefix(q, "--"):
			i := strings.IndexByte(q, '\n')
			if i < 0 {
				return ""
			}
			q = q[i+1:]
		case strings.HasPrefix(q, "/*"):
			i := strings.Index(q, "*/")
			if i < 0 {
				return ""
			}
			q = q[i+2:]
		default:
			return q
		}
	}
}

func scanAll(rows *sql.Rows, width int) ([][]any, error) {
	var all [][]any
	for rows.Next() {
		values := make([]any, width)
		ptrs := make([]any, width)
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		all = append(all, values)
	}
	return all, nil
}

// renderRows renders result rows as a bracketed list of tuples, e.g.
// [(11,)] or [('USA', 13)]. Single-element tuples keep the trailing
// comma so counts read unambiguously as tuples.
func renderRows(rows [][]any) string {
	if len(rows) == 0 {
		return "[]"
	}
	var out strings.Builder
	out.WriteString("[")
	for i, row := range rows {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString("(")
		for j, v := range row {
			if j > 0 {
				out.WriteString(", ")
			}
			out.WriteString(renderValue(v))
		}
		if len(row) == 1 {
			out.WriteString(",")
		}
		out.WriteString(")")
	}
	out.WriteString("]")
	return out.String()
}

func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case []byte:
		return "'" + escapeSingleQuotes(string(x)) + "'"
	case string:
		return "'" + escapeSingleQuotes(x) + "'"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// renderBare renders a value without quoting, for sample-row tables.
func renderBare(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}
