package datasource

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/scom-repos/scom-scatter-chart-sub000/database"
	"github.com/scom-repos/scom-scatter-chart-sub000/services"
	"github.com/scom-repos/scom-scatter-chart-sub000/utils"
	"github.com/yaoapp/kun/log"
)

// Query runs a read-only SQL query.
type Query struct {
	DB  database.Querier
	SQL string
}

// Fetch implements Source.
func (q *Query) Fetch(ctx context.Context) (*Table, error) {
	return runQuery(ctx, q.DB, q.SQL)
}

// TableQuery selects columns (all when empty) of a table.
type TableQuery struct {
	DB      database.Querier
	Table   string
	Columns []string
}

// Fetch implements Source.
func (t *TableQuery) Fetch(ctx context.Context) (*Table, error) {
	sql, err := BuildTableQuery(t.Table, t.Columns)
	if err != nil {
		return nil, err
	}
	return runQuery(ctx, t.DB, sql)
}

// BuildTableQuery renders the select of columns from table. table may be
// schema qualified.
func BuildTableQuery(table string, columns []string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("table name is required")
	}

	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}

	selected := "*"
	if len(columns) > 0 {
		quoted := make([]string, len(columns))
		for i, c := range columns {
			quoted[i] = pq.QuoteIdentifier(c)
		}
		selected = strings.Join(quoted, ", ")
	}
	return fmt.Sprintf("SELECT %s FROM %s", selected, strings.Join(parts, ".")), nil
}

// Prompt asks a language model for the query answering Text, checks it is
// read-only and runs it.
type Prompt struct {
	DB     database.Querier
	LLM    services.LLM
	Text   string
	Schema string
}

// Fetch implements Source.
func (p *Prompt) Fetch(ctx context.Context) (*Table, error) {
	if strings.TrimSpace(p.Text) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	tables, err := database.LoadSchema(ctx, p.DB, p.Schema)
	if err != nil {
		log.Warn("[datasource] generating without schema: %v", err)
		tables = nil
	}

	sql, err := services.GenerateQuery(ctx, p.LLM, p.Text, tables)
	if err != nil {
		return nil, err
	}
	return runQuery(ctx, p.DB, sql)
}

func runQuery(ctx context.Context, db database.Querier, sql string) (*Table, error) {
	if !utils.ValidateSQL(sql) {
		return nil, fmt.Errorf("%w: %s", ErrForbiddenQuery, sql)
	}

	columns, results, err := database.QueryRows(ctx, db, sql)
	if err != nil {
		return nil, err
	}
	log.Trace("[datasource] %d rows from %s", len(results), sql)
	return &Table{Columns: columns, Rows: toRows(results)}, nil
}
