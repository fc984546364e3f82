// Package render draws a chart render spec with go-echarts.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
	"github.com/scom-repos/scom-scatter-chart-sub000/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Scatter converts spec into a go-echarts scatter chart. Tick, tooltip and
// data labels are formatted here and looked up by the page's formatters.
func Scatter(spec chart.RenderSpec, title, subtitle string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "100%",
			Height:    "500px",
			ChartID:   "scatter_" + uuid.NewString()[:8],
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(tooltipOpts(spec)),
		charts.WithLegendOpts(legendOpts(spec.Legend)),
		charts.WithGridOpts(opts.Grid{
			Top:    side(spec.Grid.Top),
			Bottom: side(spec.Grid.Bottom),
			Left:   side(spec.Grid.Left),
			Right:  side(spec.Grid.Right),
		}),
		charts.WithXAxisOpts(xAxisOpts(spec)),
		charts.WithYAxisOpts(yAxisOpts(spec)),
	)

	if spec.XAxis.Type == "category" && len(spec.Series) > 0 {
		labels := make([]string, 0, len(spec.Series[0].Data))
		for _, p := range spec.Series[0].Data {
			labels = append(labels, cast.ToString(p[0]))
		}
		scatter.SetXAxis(labels)
	}

	for _, s := range spec.Series {
		scatter.AddSeries(s.Name, scatterData(s), seriesOpts(s)...)
	}
	return scatter
}

// HTML writes spec as a standalone HTML page.
func HTML(w io.Writer, spec chart.RenderSpec, title, subtitle string) error {
	if err := Scatter(spec, title, subtitle).Render(w); err != nil {
		return fmt.Errorf("unable to render chart: %w", err)
	}
	return nil
}

func side(v interface{}) string {
	switch n := v.(type) {
	case string:
		return n
	case nil:
		return ""
	}
	return cast.ToString(v) + "px"
}

func xValue(x interface{}) interface{} {
	if t, ok := x.(time.Time); ok {
		return t.UnixMilli()
	}
	return x
}

func scatterData(s chart.Series) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(s.Data))
	for _, p := range s.Data {
		data = append(data, opts.ScatterData{Value: []interface{}{xValue(p[0]), p[1]}})
	}
	return data
}

func seriesOpts(s chart.Series) []charts.SeriesOpts {
	var options []charts.SeriesOpts
	if color := s.Color(); color != "" {
		options = append(options, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	}
	if s.Label != nil && s.Label.Show {
		labels := make([]string, len(s.Data))
		for i, p := range s.Data {
			labels[i] = s.FormatLabel(p)
		}
		options = append(options, charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: string(opts.FuncOpts(lookupByIndex(labels, "p.dataIndex", "p"))),
		}))
	}
	return options
}

func tooltipOpts(spec chart.RenderSpec) opts.Tooltip {
	html := make([]string, len(spec.Tooltip.Content))
	for i, c := range spec.Tooltip.Content {
		html[i] = chart.RenderTooltipHTML(c)
	}
	return opts.Tooltip{
		Show:      opts.Bool(true),
		Trigger:   spec.Tooltip.Trigger,
		Formatter: opts.FuncOpts(lookupByIndex(html, "p[0].dataIndex", "p")),
	}
}

func legendOpts(l chart.Legend) opts.Legend {
	legend := opts.Legend{
		Show:   opts.Bool(l.Show),
		Type:   l.Type,
		Top:    l.Top,
		Bottom: l.Bottom,
		Left:   l.Left,
		Right:  l.Right,
		Orient: l.Orient,
	}
	if l.TextStyle != nil {
		legend.TextStyle = &opts.TextStyle{Color: l.TextStyle.Color}
	}
	return legend
}

func xAxisOpts(spec chart.RenderSpec) opts.XAxis {
	axis := spec.XAxis
	labels := map[string]string{}
	if len(spec.Series) > 0 {
		for _, p := range spec.Series[0].Data {
			labels[cast.ToString(xValue(p[0]))] = axis.FormatTick(p[0])
		}
	}

	fallback := "return String(v);"
	if axis.Type == "time" {
		fallback = "return echarts.format.formatTime('yyyy-MM-dd', v);"
	}
	return opts.XAxis{
		Name:         axis.Name,
		Type:         axis.Type,
		NameLocation: axis.NameLocation,
		NameGap:      axis.NameGap,
		Position:     axis.Position,
		Inverse:      opts.Bool(axis.Inverse),
		AxisLabel: &opts.AxisLabel{
			Color:     axis.AxisLabel.Color,
			Formatter: opts.FuncOpts(fmt.Sprintf("function (v) { var l = %s; if (l[v] !== undefined) { return l[v]; } %s }", jsData(labels), fallback)),
		},
	}
}

// yAxisOpts pins the value axis to ticks computed here so that every label
// comes from FormatTick.
func yAxisOpts(spec chart.RenderSpec) opts.YAxis {
	axis := spec.YAxis
	y := opts.YAxis{
		Name:         axis.Name,
		Type:         axis.Type,
		NameLocation: axis.NameLocation,
		NameGap:      axis.NameGap,
		Position:     axis.Position,
		AxisLabel:    &opts.AxisLabel{Color: axis.AxisLabel.Color},
	}

	ticks, step := yTicks(spec.Series)
	labels := make([][2]interface{}, 0, len(ticks))
	for _, v := range ticks {
		labels = append(labels, [2]interface{}{v, axis.FormatTick(v)})
	}
	if len(ticks) > 1 {
		y.Min, y.Max = ticks[0], ticks[len(ticks)-1]
		y.MinInterval, y.MaxInterval = step, step
	}

	y.AxisLabel.Formatter = opts.FuncOpts(fmt.Sprintf(
		"function (v) { var l = %s; for (var i = 0; i < l.length; i++) { if (Math.abs(l[i][0] - v) <= %g) { return l[i][1]; } } return String(v); }",
		jsData(labels), step/1e6))
	return y
}

// yTicks spans the series values and zero with about five evenly spaced
// ticks. It returns no ticks when every value is zero or missing.
func yTicks(series []chart.Series) ([]float64, float64) {
	lo, hi := 0.0, 0.0
	for _, s := range series {
		for _, p := range s.Data {
			if v, ok := utils.ToFloat(p[1]); ok {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	if lo == hi {
		return nil, 0
	}

	step := niceStep((hi - lo) / 5)
	first := math.Floor(lo/step) * step
	count := int(math.Round((math.Ceil(hi/step)*step - first) / step))

	d := decimal.NewFromFloat(step)
	start := decimal.NewFromFloat(first)
	ticks := make([]float64, 0, count+1)
	for i := 0; i <= count; i++ {
		v, _ := start.Add(d.Mul(decimal.NewFromInt(int64(i)))).Float64()
		ticks = append(ticks, v)
	}
	return ticks, step
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	base := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / base; {
	case f <= 1:
		return base
	case f <= 2:
		return 2 * base
	case f <= 2.5:
		return 2.5 * base
	case f <= 5:
		return 5 * base
	}
	return 10 * base
}

// lookupByIndex returns a formatter that picks values[index] for the point.
func lookupByIndex(values []string, index, param string) string {
	return fmt.Sprintf("function (%s) { var l = %s; return l[%s] || ''; }", param, jsData(values), index)
}

// jsData returns a JavaScript expression evaluating to v. The chart option
// is JSON encoded with formatter bodies as strings, so the data goes in a
// single quoted literal whose double quotes survive that encoding.
func jsData(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return "JSON.parse('" + strings.ReplaceAll(string(bytes), "'", `\u0027`) + "')"
}
