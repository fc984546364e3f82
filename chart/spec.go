package chart

import (
	"github.com/scom-repos/scom-scatter-chart-sub000/utils"
	"github.com/spf13/cast"
)

// RenderSpec is the render-ready option object handed to the charting library.
type RenderSpec struct {
	Tooltip Tooltip  `json:"tooltip"`
	Legend  Legend   `json:"legend"`
	Grid    Grid     `json:"grid"`
	XAxis   Axis     `json:"xAxis"`
	YAxis   Axis     `json:"yAxis"`
	Series  []Series `json:"series"`
}

// Grid insets the plot area. Sides are pixels (numbers) or percentages (strings).
type Grid struct {
	Top          interface{} `json:"top"`
	Bottom       interface{} `json:"bottom"`
	Left         interface{} `json:"left"`
	Right        interface{} `json:"right"`
	ContainLabel bool        `json:"containLabel"`
}

// TextStyle colors a text element.
type TextStyle struct {
	Color      string `json:"color,omitempty"`
	FontWeight string `json:"fontWeight,omitempty"`
}

// Legend is the legend descriptor.
type Legend struct {
	Show      bool       `json:"show"`
	Type      string     `json:"type,omitempty"`
	Top       string     `json:"top,omitempty"`
	Bottom    string     `json:"bottom,omitempty"`
	Left      string     `json:"left,omitempty"`
	Right     string     `json:"right,omitempty"`
	Orient    string     `json:"orient,omitempty"`
	TextStyle *TextStyle `json:"textStyle,omitempty"`
}

// AxisLabel styles tick labels.
type AxisLabel struct {
	Color       string `json:"color,omitempty"`
	FontSize    int    `json:"fontSize"`
	HideOverlap bool   `json:"hideOverlap"`
	TickFormat  string `json:"tickFormat,omitempty"`
}

// Axis is an axis descriptor. FormatTick renders its tick labels.
type Axis struct {
	Type          string    `json:"type"` // time | category | value
	Name          string    `json:"name,omitempty"`
	NameLocation  string    `json:"nameLocation"`
	NameGap       int       `json:"nameGap"`
	NameTextStyle TextStyle `json:"nameTextStyle"`
	Position      string    `json:"position,omitempty"`
	Inverse       bool      `json:"inverse,omitempty"`
	AxisLabel     AxisLabel `json:"axisLabel"`

	percentage bool
}

// FormatTick renders one tick label.
//
// Time axes format dates with the tick pattern. Category axes format numeric
// labels and pass the rest through. Value axes always go through the numeric
// formatter with two decimals.
func (a Axis) FormatTick(v interface{}) string {
	switch a.Type {
	case "time":
		t, err := utils.ParseTime(v, "")
		if err != nil {
			return cast.ToString(v)
		}
		return utils.FormatTime(t, a.AxisLabel.TickFormat)
	case "category":
		if utils.IsNumeric(v) {
			return utils.FormatNumber(v, utils.WithFormat(a.AxisLabel.TickFormat))
		}
		return cast.ToString(v)
	}

	opts := []utils.FormatOption{utils.WithFormat(a.AxisLabel.TickFormat), utils.WithDecimals(2)}
	if a.percentage {
		opts = append(opts, utils.WithPercentValues())
	}
	return utils.FormatNumber(v, opts...)
}

// Percentage reports whether the axis shows percentages.
func (a Axis) Percentage() bool {
	return a.percentage
}

// ItemStyle colors a series.
type ItemStyle struct {
	Color string `json:"color,omitempty"`
}

// Emphasis controls hover highlighting.
type Emphasis struct {
	Focus string `json:"focus"`
}

// SeriesLabel toggles data labels on points.
type SeriesLabel struct {
	Show bool `json:"show"`
}

// Series is one plotted trace.
type Series struct {
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	Stack      bool         `json:"stack"`
	Smooth     bool         `json:"smooth"`
	ItemStyle  *ItemStyle   `json:"itemStyle,omitempty"`
	Emphasis   Emphasis     `json:"emphasis"`
	ShowSymbol bool         `json:"showSymbol"`
	Label      *SeriesLabel `json:"label,omitempty"`
	Data       []Point      `json:"data"`
}

// Color returns the configured series color, or "".
func (s Series) Color() string {
	if s.ItemStyle == nil {
		return ""
	}
	return s.ItemStyle.Color
}

// FormatLabel renders the data label of a point.
func (s Series) FormatLabel(p Point) string {
	return utils.FormatNumber(p[1])
}
