package chart

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/scom-repos/scom-scatter-chart-sub000/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Row is one record of the bound data source.
type Row map[string]interface{}

// Point is an [x, y] pair; y is nil where a series has no value.
type Point = utils.Pair

// XKind is the x-axis variant: Time or Category.
type XKind interface {
	kind() string
}

// Time parses x values as dates. Format is a moment-style pattern; empty
// means the format is detected.
type Time struct {
	Format string
}

// Category uses x values as plain labels.
type Category struct{}

func (Time) kind() string     { return "time" }
func (Category) kind() string { return "category" }

// XColumn selects the x-axis column.
type XColumn struct {
	Key  string
	Kind XKind
}

type xColumnJSON struct {
	Key        string `json:"key"`
	Type       string `json:"type"`
	TimeFormat string `json:"timeFormat,omitempty"`
}

// MarshalJSON writes the host shape {"key","type","timeFormat"}.
func (c XColumn) MarshalJSON() ([]byte, error) {
	out := xColumnJSON{Key: c.Key, Type: "category"}
	if t, ok := c.Kind.(Time); ok {
		out.Type = "time"
		out.TimeFormat = t.Format
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the host shape {"key","type","timeFormat"}.
func (c *XColumn) UnmarshalJSON(data []byte) error {
	var in xColumnJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	c.Key = in.Key
	switch in.Type {
	case "time":
		c.Kind = Time{Format: in.TimeFormat}
	case "category", "":
		c.Kind = Category{}
	default:
		return fmt.Errorf("unknown x column type %q", in.Type)
	}
	return nil
}

// SeriesOption overrides the title or color of one series, keyed by a y
// column or a group value.
type SeriesOption struct {
	Key   string `json:"key"`
	Title string `json:"title,omitempty"`
	Color string `json:"color,omitempty"`
}

// LegendOptions styles the legend.
type LegendOptions struct {
	Show      *bool  `json:"show,omitempty"`
	FontColor string `json:"fontColor,omitempty"`
	Scroll    *bool  `json:"scroll,omitempty"`
	Position  string `json:"position,omitempty"` // top | bottom | left | right
}

// XAxisOptions styles the x axis.
type XAxisOptions struct {
	Title         string `json:"title,omitempty"`
	FontColor     string `json:"fontColor,omitempty"`
	TickFormat    string `json:"tickFormat,omitempty"`
	ReverseValues *bool  `json:"reverseValues,omitempty"`
}

// YAxisOptions styles the y axis.
type YAxisOptions struct {
	Title       string `json:"title,omitempty"`
	FontColor   string `json:"fontColor,omitempty"`
	TickFormat  string `json:"tickFormat,omitempty"`
	LabelFormat string `json:"labelFormat,omitempty"`
	Position    string `json:"position,omitempty"` // left | right
}

// Padding insets the plot area, in pixels.
type Padding struct {
	Top    *float64 `json:"top,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
	Left   *float64 `json:"left,omitempty"`
	Right  *float64 `json:"right,omitempty"`
}

// Options is the chart configuration supplied by the host.
type Options struct {
	XColumn            XColumn        `json:"xColumn"`
	YColumns           []string       `json:"yColumns"`
	GroupBy            string         `json:"groupBy,omitempty"`
	SeriesOptions      []SeriesOption `json:"seriesOptions,omitempty"`
	Smooth             *bool          `json:"smooth,omitempty"`
	Stacking           *bool          `json:"stacking,omitempty"`
	Legend             *LegendOptions `json:"legend,omitempty"`
	ShowSymbol         *bool          `json:"showSymbol,omitempty"`
	ShowDataLabels     *bool          `json:"showDataLabels,omitempty"`
	Percentage         *bool          `json:"percentage,omitempty"`
	MergeDuplicateData *bool          `json:"mergeDuplicateData,omitempty"`
	XAxis              *XAxisOptions  `json:"xAxis,omitempty"`
	YAxis              *YAxisOptions  `json:"yAxis,omitempty"`
	Padding            *Padding       `json:"padding,omitempty"`
}

// Bool returns a pointer to b, for optional flags.
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to f, for optional sizes.
func Float(f float64) *float64 {
	return &f
}
