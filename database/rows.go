package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// QueryRows runs sql and scans every row into a column -> value map. It also
// returns the column names in select order.
func QueryRows(ctx context.Context, q Querier, sql string, args ...any) ([]string, []map[string]interface{}, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	return ScanRows(rows)
}

// ScanRows drains rows. Text columns become strings, numeric columns become
// float64 and dates become time.Time.
func ScanRows(rows pgx.Rows) ([]string, []map[string]interface{}, error) {
	fieldDescriptions := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescriptions))
	for i, fd := range fieldDescriptions {
		columns[i] = fd.Name
	}

	results := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rowData := make(map[string]interface{}, len(columns))
		for i, colName := range columns {
			rowData[colName] = normalizeValue(values[i])
		}
		results = append(results, rowData)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return columns, results, nil
}

func normalizeValue(raw interface{}) interface{} {
	switch v := raw.(type) {
	case []byte:
		return string(v)
	case pgtype.Numeric:
		return numericValue(v)
	case pgtype.Date:
		if !v.Valid {
			return nil
		}
		return v.Time
	case time.Time:
		return v.UTC()
	}
	return raw
}

func numericValue(n pgtype.Numeric) interface{} {
	if !n.Valid || n.NaN || n.Int == nil {
		return nil
	}
	f, _ := decimal.NewFromBigInt(n.Int, n.Exp).Float64()
	return f
}
