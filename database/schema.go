package database

import (
	"context"
	"fmt"
	"strings"
)

// TableSchema describes one table for the query generator.
type TableSchema struct {
	Name        string         `json:"name"`
	Columns     []ColumnSchema `json:"columns"`
	Description string         `json:"description"`
}

// ColumnSchema describes one column of a table.
type ColumnSchema struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Nullable    bool   `json:"nullable"`
	Description string `json:"description"`
}

const schemaQuery = `SELECT c.table_name, c.column_name, c.data_type, c.is_nullable,
       COALESCE(col_description((quote_ident(c.table_schema) || '.' || quote_ident(c.table_name))::regclass::oid, c.ordinal_position), '') AS description
FROM information_schema.columns c
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`

// LoadSchema reads the tables and columns of a database schema ("public" when
// empty) from information_schema.
func LoadSchema(ctx context.Context, q Querier, schema string) ([]TableSchema, error) {
	if schema == "" {
		schema = "public"
	}

	rows, err := q.Query(ctx, schemaQuery, schema)
	if err != nil {
		return nil, fmt.Errorf("unable to load schema %s: %w", schema, err)
	}
	defer rows.Close()

	tables := []TableSchema{}
	index := map[string]int{}
	for rows.Next() {
		var table, column, dataType, nullable, description string
		if err := rows.Scan(&table, &column, &dataType, &nullable, &description); err != nil {
			return nil, fmt.Errorf("failed to scan schema row: %w", err)
		}

		i, has := index[table]
		if !has {
			i = len(tables)
			index[table] = i
			tables = append(tables, TableSchema{Name: table})
		}
		tables[i].Columns = append(tables[i].Columns, ColumnSchema{
			Name:        column,
			Type:        dataType,
			Nullable:    strings.EqualFold(nullable, "YES"),
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to load schema %s: %w", schema, err)
	}
	return tables, nil
}

// Describe renders tables as the plain-text schema given to the query generator.
func Describe(tables []TableSchema) string {
	var b strings.Builder
	b.WriteString("Database Schema:\n")
	for _, table := range tables {
		b.WriteString(fmt.Sprintf("- %s: %s\n", table.Name, table.Description))
		b.WriteString("  Columns: ")
		for i, col := range table.Columns {
			nullable := ""
			if !col.Nullable {
				nullable = " NOT NULL"
			}
			b.WriteString(fmt.Sprintf("%s (%s%s)", col.Name, col.Type, nullable))
			if i < len(table.Columns)-1 {
				b.WriteString(", ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
