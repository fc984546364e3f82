// Package chart turns tabular rows and a chart configuration into a scatter
// chart option object.
package chart

import (
	"github.com/scom-repos/scom-scatter-chart-sub000/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/yaoapp/kun/log"
)

// GetChartData builds the render spec for rows. It keeps no state between
// calls.
func GetChartData(rows []Row, options Options) RenderSpec {
	s := options.Resolve()

	var series []Series
	if s.grouped(rows) {
		series = buildGroupedSeries(rows, s)
	} else {
		series = buildColumnSeries(rows, s)
	}

	return RenderSpec{
		Tooltip: buildTooltip(series, s),
		Legend:  buildLegend(s.Legend),
		Grid:    s.Grid,
		XAxis:   buildXAxis(s),
		YAxis:   buildYAxis(s),
		Series:  series,
	}
}

// grouped is true when groupBy is set and the first row carries that column.
func (s Settings) grouped(rows []Row) bool {
	if s.GroupBy == "" || len(rows) == 0 {
		return false
	}
	_, has := rows[0][s.GroupBy]
	return has
}

func (s Settings) yKey() string {
	if len(s.YColumns) == 0 {
		return ""
	}
	return s.YColumns[0]
}

// xValue converts a raw x value for the configured axis. Unparseable dates
// keep their raw value.
func (s Settings) xValue(raw interface{}) interface{} {
	switch kind := s.XKind.(type) {
	case Time:
		t, err := utils.ParseTime(raw, kind.Format)
		if err != nil {
			log.Trace("[chart] cannot parse %v as time (%s): %v", raw, kind.Format, err)
			return raw
		}
		return t
	case Category:
		return raw
	}
	return raw
}

func buildGroupedSeries(rows []Row, s Settings) []Series {
	groups := utils.GroupByCategory(rows, s.GroupBy, s.XKey, s.yKey())
	times := utils.ExtractUniqueTimes(rows, s.XKey)

	keys := groups.Keys()
	data := make([][]Point, 0, len(keys))
	for _, key := range keys {
		group, _ := groups.Get(key)
		merged := utils.ConcatUnique(times, group)
		points := make([]Point, 0, merged.Len())
		merged.Each(func(x interface{}, y interface{}) {
			points = append(points, Point{s.xValue(x), y})
		})
		data = append(data, utils.GroupArrayByKey(points, s.MergeDuplicateData))
	}

	if s.Percentage && len(data) > 0 && len(data[0]) > 0 && utils.IsNumeric(data[0][0][1]) {
		data = normalize(data)
	}

	series := make([]Series, 0, len(keys))
	for i, key := range keys {
		series = append(series, s.newSeries(cast.ToString(key), data[i]))
	}
	return series
}

func buildColumnSeries(rows []Row, s Settings) []Series {
	percentage := s.Percentage && len(rows) > 0
	_, isTime := s.XKind.(Time)

	data := make([][]Point, 0, len(s.YColumns))
	for _, col := range s.YColumns {
		if percentage && !utils.IsNumeric(rows[0][col]) {
			percentage = false
		}

		points := make([]Point, 0, len(rows))
		for _, row := range rows {
			// category x values take the column name, not row[key]
			var x interface{} = col
			if isTime {
				x = s.xValue(row[s.XKey])
			}
			points = append(points, Point{x, row[col]})
		}
		data = append(data, utils.GroupArrayByKey(points, s.MergeDuplicateData))
	}

	if percentage {
		data = normalize(data)
	}

	series := make([]Series, 0, len(s.YColumns))
	for i, col := range s.YColumns {
		series = append(series, s.newSeries(col, data[i]))
	}
	return series
}

// normalize replaces every value with its share of the total across series at
// the same index, times 100. Missing values count as 0 in the total and stay
// missing; a zero total yields 0.
func normalize(data [][]Point) [][]Point {
	out := make([][]Point, len(data))
	for j := range data {
		out[j] = make([]Point, len(data[j]))
		copy(out[j], data[j])
	}
	if len(data) == 0 {
		return out
	}

	hundred := decimal.NewFromInt(100)
	for i := range data[0] {
		total := decimal.Zero
		for j := range data {
			if i >= len(data[j]) {
				continue
			}
			if d, ok := utils.ToDecimal(data[j][i][1]); ok {
				total = total.Add(d)
			}
		}

		for j := range out {
			if i >= len(out[j]) {
				continue
			}
			d, ok := utils.ToDecimal(out[j][i][1])
			if !ok {
				continue
			}
			if total.IsZero() {
				out[j][i][1] = 0.0
				continue
			}
			share, _ := d.Div(total).Mul(hundred).Float64()
			out[j][i][1] = share
		}
	}
	return out
}

func (s Settings) newSeries(key string, data []Point) Series {
	series := Series{
		Name:       key,
		Type:       "scatter",
		Stack:      s.Stacking,
		Smooth:     s.Smooth,
		Emphasis:   Emphasis{Focus: "series"},
		ShowSymbol: s.ShowSymbol,
		Data:       data,
	}
	if series.Data == nil {
		series.Data = []Point{}
	}
	if opt, has := s.SeriesOptions[key]; has {
		if opt.Title != "" {
			series.Name = opt.Title
		}
		if opt.Color != "" {
			series.ItemStyle = &ItemStyle{Color: opt.Color}
		}
	}
	if s.ShowDataLabels {
		series.Label = &SeriesLabel{Show: true}
	}
	return series
}

func buildLegend(l LegendSettings) Legend {
	legend := Legend{Show: l.Show}
	if !l.Show {
		return legend
	}

	legend.Type = "plain"
	if l.Scroll {
		legend.Type = "scroll"
	}
	switch l.Position {
	case "top":
		legend.Top = "auto"
	case "bottom":
		legend.Bottom = "auto"
	case "left":
		legend.Left = "auto"
		legend.Orient = "vertical"
	case "right":
		legend.Right = "auto"
		legend.Orient = "vertical"
	}
	if l.FontColor != "" {
		legend.TextStyle = &TextStyle{Color: l.FontColor}
	}
	return legend
}

func buildXAxis(s Settings) Axis {
	axis := Axis{
		Type:          "category",
		Name:          s.XAxis.Title,
		NameLocation:  "center",
		NameGap:       s.XAxis.NameGap,
		NameTextStyle: TextStyle{Color: s.XAxis.FontColor, FontWeight: "bold"},
		Inverse:       s.XAxis.Reverse,
		AxisLabel: AxisLabel{
			Color:       s.XAxis.FontColor,
			FontSize:    10,
			HideOverlap: true,
			TickFormat:  s.XAxis.TickFormat,
		},
	}
	if _, ok := s.XKind.(Time); ok {
		axis.Type = "time"
	}
	return axis
}

func buildYAxis(s Settings) Axis {
	return Axis{
		Type:          "value",
		Name:          s.YAxis.Title,
		NameLocation:  "center",
		NameGap:       s.YAxis.NameGap,
		NameTextStyle: TextStyle{Color: s.YAxis.FontColor, FontWeight: "bold"},
		Position:      s.YAxis.Position,
		AxisLabel: AxisLabel{
			Color:       s.YAxis.FontColor,
			FontSize:    10,
			HideOverlap: true,
			TickFormat:  s.YAxis.TickFormat,
		},
		percentage: s.Percentage,
	}
}
