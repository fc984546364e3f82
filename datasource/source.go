// Package datasource fetches the tabular rows a chart widget is bound to.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
	"github.com/scom-repos/scom-scatter-chart-sub000/database"
	"github.com/scom-repos/scom-scatter-chart-sub000/services"
	"github.com/scom-repos/scom-scatter-chart-sub000/utils"
	"github.com/spf13/cast"
)

var (
	// ErrUnsupported is returned for a data source kind that cannot be opened.
	ErrUnsupported = errors.New("unsupported data source")
	// ErrForbiddenQuery is returned for a query that is not read-only.
	ErrForbiddenQuery = errors.New("query contains forbidden operations")
	// ErrForbiddenPath is returned for a file outside the data directory.
	ErrForbiddenPath = errors.New("file is outside the data directory")
)

// Data source kinds.
const (
	KindInline   = "inline"
	KindCSV      = "csv"
	KindExcel    = "excel"
	KindPostgres = "postgres"
	KindTable    = "table"
	KindPrompt   = "prompt"
)

// Table is a fetched result set. Columns keep the source order.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    []chart.Row `json:"rows"`
}

// Source fetches rows.
type Source interface {
	Fetch(ctx context.Context) (*Table, error)
}

// Spec describes where the rows of a widget come from.
type Spec struct {
	Kind    string
	Query   string
	Table   string
	Columns []string
	Prompt  string
	File    string
	Sheet   string
	Rows    []chart.Row
}

// Factory opens sources. DB and LLM are optional; kinds needing a missing
// collaborator fail with ErrUnsupported.
//
// File kinds read any path unless DataDir or NoFiles is set. With DataDir,
// paths are relative to it and may not leave it.
type Factory struct {
	DB      database.Querier
	LLM     services.LLM
	Schema  string
	DataDir string
	NoFiles bool
}

// Open returns the source described by spec.
func (f Factory) Open(spec Spec) (Source, error) {
	switch spec.Kind {
	case "", KindInline:
		return Inline(spec.Rows), nil
	case KindCSV, KindExcel:
		if err := f.checkFile(spec); err != nil {
			return nil, err
		}
		if spec.Kind == KindCSV {
			return &CSV{Path: spec.File, Dir: f.DataDir}, nil
		}
		return &Excel{Path: spec.File, Dir: f.DataDir, Sheet: spec.Sheet}, nil
	case KindPostgres:
		if f.DB == nil {
			return nil, fmt.Errorf("%w: %s needs a database", ErrUnsupported, spec.Kind)
		}
		return &Query{DB: f.DB, SQL: spec.Query}, nil
	case KindTable:
		if f.DB == nil {
			return nil, fmt.Errorf("%w: %s needs a database", ErrUnsupported, spec.Kind)
		}
		return &TableQuery{DB: f.DB, Table: spec.Table, Columns: spec.Columns}, nil
	case KindPrompt:
		if f.DB == nil || f.LLM == nil {
			return nil, fmt.Errorf("%w: %s needs a database and a language model", ErrUnsupported, spec.Kind)
		}
		return &Prompt{DB: f.DB, LLM: f.LLM, Text: spec.Prompt, Schema: f.Schema}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, spec.Kind)
}

// Inline serves rows held in memory.
type Inline []chart.Row

// Fetch implements Source. Columns are sorted because rows carry no order.
func (in Inline) Fetch(context.Context) (*Table, error) {
	seen := map[string]bool{}
	columns := []string{}
	for _, row := range in {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	rows := make([]chart.Row, len(in))
	copy(rows, in)
	return &Table{Columns: columns, Rows: rows}, nil
}

func toRows(results []map[string]interface{}) []chart.Row {
	rows := make([]chart.Row, len(results))
	for i, r := range results {
		rows[i] = chart.Row(r)
	}
	return rows
}

// cell converts a text cell: empty is nil, numbers become float64.
func cell(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if utils.IsNumeric(s) {
		return cast.ToFloat64(s)
	}
	return s
}

// textRows turns a header line and records into rows. Short records leave
// the missing cells nil.
func textRows(header []string, records [][]string) *Table {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	rows := make([]chart.Row, 0, len(records))
	for _, rec := range records {
		row := make(chart.Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = cell(rec[i])
			} else {
				row[col] = nil
			}
		}
		rows = append(rows, row)
	}
	return &Table{Columns: columns, Rows: rows}
}
