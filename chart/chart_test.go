package chart

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestGetChartDataTimeSeries(t *testing.T) {
	rows := []Row{
		{"t": "2024-01-01", "price": 100},
		{"t": "2024-01-02", "price": 110},
	}
	spec := GetChartData(rows, Options{
		XColumn:  XColumn{Key: "t", Kind: Time{}},
		YColumns: []string{"price"},
	})

	require.Len(t, spec.Series, 1)
	s := spec.Series[0]
	assert.Equal(t, "price", s.Name)
	assert.Equal(t, "scatter", s.Type)
	require.Len(t, s.Data, 2)
	assert.True(t, date(1).Equal(s.Data[0][0].(time.Time)))
	assert.Equal(t, 100, s.Data[0][1])
	assert.True(t, date(2).Equal(s.Data[1][0].(time.Time)))
	assert.Equal(t, 110, s.Data[1][1])
	assert.Equal(t, "time", spec.XAxis.Type)
}

func TestGetChartDataSeriesTitle(t *testing.T) {
	rows := []Row{{"t": "2024-01-01", "price": 100}}
	spec := GetChartData(rows, Options{
		XColumn:       XColumn{Key: "t", Kind: Time{Format: "YYYY-MM-DD"}},
		YColumns:      []string{"price"},
		SeriesOptions: []SeriesOption{{Key: "price", Title: "Price", Color: "#ff0000"}},
	})
	require.Len(t, spec.Series, 1)
	assert.Equal(t, "Price", spec.Series[0].Name)
	assert.Equal(t, "#ff0000", spec.Series[0].Color())
}

func TestGetChartDataGrouped(t *testing.T) {
	rows := []Row{
		{"t": "d1", "g": "A", "v": 10},
		{"t": "d1", "g": "B", "v": 20},
		{"t": "d2", "g": "A", "v": 30},
	}
	spec := GetChartData(rows, Options{
		XColumn:  XColumn{Key: "t", Kind: Category{}},
		YColumns: []string{"v"},
		GroupBy:  "g",
	})

	require.Len(t, spec.Series, 2)
	a, b := spec.Series[0], spec.Series[1]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, []Point{{"d1", 10}, {"d2", 30}}, a.Data)
	assert.Equal(t, []Point{{"d1", 20}, {"d2", nil}}, b.Data)
}

func TestGetChartDataGroupedNeedsColumnOnFirstRow(t *testing.T) {
	rows := []Row{
		{"t": "d1", "v": 10},
		{"t": "d2", "g": "A", "v": 30},
	}
	spec := GetChartData(rows, Options{
		XColumn:  XColumn{Key: "t", Kind: Category{}},
		YColumns: []string{"v"},
		GroupBy:  "g",
	})
	require.Len(t, spec.Series, 1)
	assert.Equal(t, "v", spec.Series[0].Name)
}

func TestSeriesCountInvariant(t *testing.T) {
	rows := []Row{}
	for i := 0; i < 12; i++ {
		rows = append(rows, Row{
			"t": fmt.Sprintf("2024-01-%02d", i%5+1),
			"g": fmt.Sprintf("g%d", i%4),
			"a": i,
			"b": i * 2,
			"c": i * 3,
		})
	}

	ungrouped := GetChartData(rows, Options{XColumn: XColumn{Key: "t", Kind: Time{}}, YColumns: []string{"a", "b", "c"}})
	assert.Len(t, ungrouped.Series, 3)

	grouped := GetChartData(rows, Options{XColumn: XColumn{Key: "t", Kind: Time{}}, YColumns: []string{"a"}, GroupBy: "g"})
	require.Len(t, grouped.Series, 4)
	for _, s := range grouped.Series {
		assert.Len(t, s.Data, 5)
		for i, p := range s.Data {
			assert.Equal(t, grouped.Series[0].Data[i][0], p[0])
		}
	}
}

func TestGetChartDataEmptyRows(t *testing.T) {
	spec := GetChartData(nil, Options{
		XColumn:    XColumn{Key: "t", Kind: Time{}},
		YColumns:   []string{"a", "b"},
		GroupBy:    "g",
		Percentage: Bool(true),
	})
	require.Len(t, spec.Series, 2)
	for _, s := range spec.Series {
		assert.NotNil(t, s.Data)
		assert.Empty(t, s.Data)
	}
	assert.Empty(t, spec.Tooltip.Content)
}

func TestPercentageUngrouped(t *testing.T) {
	rows := []Row{
		{"t": "2024-01-01", "a": 1, "b": 3},
		{"t": "2024-01-02", "a": "2", "b": 2},
		{"t": "2024-01-03", "a": 0, "b": 0},
	}
	spec := GetChartData(rows, Options{
		XColumn:    XColumn{Key: "t", Kind: Time{}},
		YColumns:   []string{"a", "b"},
		Percentage: Bool(true),
	})
	require.Len(t, spec.Series, 2)
	a, b := spec.Series[0].Data, spec.Series[1].Data
	assert.InDelta(t, 25.0, a[0][1], 1e-9)
	assert.InDelta(t, 75.0, b[0][1], 1e-9)
	assert.InDelta(t, 100.0, a[1][1].(float64)+b[1][1].(float64), 1e-9)
	assert.Equal(t, 0.0, a[2][1])
	assert.Equal(t, 0.0, b[2][1])
}

func TestPercentageGroupedSumsToHundred(t *testing.T) {
	rows := []Row{
		{"t": "d1", "g": "A", "v": 10},
		{"t": "d1", "g": "B", "v": 30},
		{"t": "d1", "g": "C", "v": 60},
		{"t": "d2", "g": "A", "v": 7},
		{"t": "d2", "g": "B", "v": 7},
	}
	spec := GetChartData(rows, Options{
		XColumn:    XColumn{Key: "t", Kind: Category{}},
		YColumns:   []string{"v"},
		GroupBy:    "g",
		Percentage: Bool(true),
	})
	require.Len(t, spec.Series, 3)
	for i := 0; i < 2; i++ {
		sum := 0.0
		for _, s := range spec.Series {
			if f, ok := s.Data[i][1].(float64); ok {
				assert.False(t, math.IsNaN(f))
				sum += f
			}
		}
		assert.InDelta(t, 100.0, sum, 1e-9)
	}
	assert.Nil(t, spec.Series[2].Data[1][1])
}

func TestPercentageDisabledForNonNumeric(t *testing.T) {
	rows := []Row{
		{"t": "2024-01-01", "a": "n/a", "b": 3},
		{"t": "2024-01-02", "a": 1, "b": 2},
	}
	spec := GetChartData(rows, Options{
		XColumn:    XColumn{Key: "t", Kind: Time{}},
		YColumns:   []string{"a", "b"},
		Percentage: Bool(true),
	})
	assert.Equal(t, 3, spec.Series[1].Data[0][1])
	assert.Equal(t, 2, spec.Series[1].Data[1][1])
}

func TestMergeDuplicateData(t *testing.T) {
	rows := []Row{
		{"t": "2024-01-01", "v": 1},
		{"t": "2024-01-01", "v": 2.5},
		{"t": "2024-01-02", "v": 4},
	}
	spec := GetChartData(rows, Options{
		XColumn:            XColumn{Key: "t", Kind: Time{}},
		YColumns:           []string{"v"},
		MergeDuplicateData: Bool(true),
	})
	require.Len(t, spec.Series[0].Data, 2)
	assert.Equal(t, 3.5, spec.Series[0].Data[0][1])
}

func TestCategoryUngroupedUsesColumnName(t *testing.T) {
	rows := []Row{
		{"k": "x1", "v": 1},
		{"k": "x2", "v": 2},
	}
	spec := GetChartData(rows, Options{
		XColumn:  XColumn{Key: "k", Kind: Category{}},
		YColumns: []string{"v"},
	})
	assert.Equal(t, []Point{{"v", 1}, {"v", 2}}, spec.Series[0].Data)
}

func TestUnparseableTimeKeepsRawValue(t *testing.T) {
	rows := []Row{{"t": "someday", "v": 1}}
	spec := GetChartData(rows, Options{
		XColumn:  XColumn{Key: "t", Kind: Time{Format: "YYYY-MM-DD"}},
		YColumns: []string{"v"},
	})
	assert.Equal(t, "someday", spec.Series[0].Data[0][0])
}

func TestSeriesDecoration(t *testing.T) {
	rows := []Row{{"t": "2024-01-01", "v": 1234}}
	spec := GetChartData(rows, Options{
		XColumn:        XColumn{Key: "t", Kind: Time{}},
		YColumns:       []string{"v"},
		Stacking:       Bool(true),
		Smooth:         Bool(true),
		ShowSymbol:     Bool(true),
		ShowDataLabels: Bool(true),
	})
	s := spec.Series[0]
	assert.True(t, s.Stack)
	assert.True(t, s.Smooth)
	assert.True(t, s.ShowSymbol)
	require.NotNil(t, s.Label)
	assert.True(t, s.Label.Show)
	assert.Equal(t, "series", s.Emphasis.Focus)
	assert.Equal(t, "1.23K", s.FormatLabel(s.Data[0]))
}
