package chart

import (
	"html"
	"strings"
	"time"

	"github.com/scom-repos/scom-scatter-chart-sub000/utils"
	"github.com/spf13/cast"
)

// Tooltip is the combined axis tooltip. Content holds one entry per x position.
type Tooltip struct {
	Trigger string           `json:"trigger"`
	Content []TooltipContent `json:"content"`
}

// TooltipContent is the tooltip of one x position.
type TooltipContent struct {
	Header string        `json:"header"`
	Lines  []TooltipLine `json:"lines"`
}

// TooltipLine is one label/value row of a tooltip.
type TooltipLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

// At returns the tooltip for x position index.
func (t Tooltip) At(index int) (TooltipContent, bool) {
	if index < 0 || index >= len(t.Content) {
		return TooltipContent{}, false
	}
	return t.Content[index], true
}

func buildTooltip(series []Series, s Settings) Tooltip {
	tooltip := Tooltip{Trigger: "axis", Content: []TooltipContent{}}
	if len(series) == 0 {
		return tooltip
	}

	_, isTime := s.XKind.(Time)
	for i, point := range series[0].Data {
		content := TooltipContent{Header: tooltipHeader(point[0], isTime), Lines: []TooltipLine{}}

		if len(series) == 1 {
			content.Lines = append(content.Lines, TooltipLine{
				Label: series[0].Name,
				Value: formatTooltipValue(point[1], s),
				Color: series[0].Color(),
			})
			tooltip.Content = append(tooltip.Content, content)
			continue
		}

		for _, ser := range series {
			if i >= len(ser.Data) || ser.Data[i][1] == nil {
				continue
			}
			content.Lines = append(content.Lines, TooltipLine{
				Label: ser.Name,
				Value: formatTooltipValue(ser.Data[i][1], s),
				Color: ser.Color(),
			})
		}
		tooltip.Content = append(tooltip.Content, content)
	}
	return tooltip
}

func tooltipHeader(x interface{}, isTime bool) string {
	if isTime {
		if t, ok := x.(time.Time); ok {
			return utils.FormatTime(t, DefaultTooltipDateTime)
		}
	}
	return cast.ToString(x)
}

func formatTooltipValue(v interface{}, s Settings) string {
	if v == nil {
		return "-"
	}
	if s.Percentage {
		return utils.FormatNumber(v, utils.WithPercentValues())
	}
	if s.YAxis.LabelFormat != "" {
		if f, ok := utils.ToFloat(v); ok {
			return utils.FormatNumberByFormat(f, s.YAxis.LabelFormat, false)
		}
	}
	return utils.FormatNumber(v)
}

// RenderTooltipHTML renders tooltip content as the markup shown by the renderer.
func RenderTooltipHTML(c TooltipContent) string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(c.Header))
	b.WriteString("</b>")
	for _, line := range c.Lines {
		b.WriteString("<br/>")
		if line.Color != "" {
			b.WriteString(`<span style="display:inline-block;margin-right:4px;border-radius:10px;width:10px;height:10px;background-color:`)
			b.WriteString(html.EscapeString(line.Color))
			b.WriteString(`;"></span>`)
		}
		b.WriteString(html.EscapeString(line.Label))
		b.WriteString(": ")
		b.WriteString(html.EscapeString(line.Value))
	}
	return b.String()
}

// TooltipPosition places a tooltip of contentSize at the pointer so that it
// stays inside viewSize. It flips left or up when it would overflow the right
// or bottom edge and clamps at 0.
func TooltipPosition(point, contentSize, viewSize [2]float64) [2]float64 {
	x, y := point[0], point[1]
	if x+contentSize[0] > viewSize[0] {
		x -= contentSize[0]
	}
	if y+contentSize[1] > viewSize[1] {
		y -= contentSize[1]
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return [2]float64{x, y}
}
