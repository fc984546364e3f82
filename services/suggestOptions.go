package services

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxSampleRows = 20

// Suggestion is a chart configuration proposed by a model.
type Suggestion struct {
	Title    string        `json:"title"`
	Insights string        `json:"insights,omitempty"`
	Options  chart.Options `json:"options"`
}

type suggestionJSON struct {
	Title    string        `json:"title"`
	Insights string        `json:"insights"`
	XColumn  chart.XColumn `json:"xColumn"`
	YColumns []string      `json:"yColumns"`
	GroupBy  string        `json:"groupBy"`
}

// SuggestOptions asks llm which columns to plot. The answer is checked
// against columns before it is returned.
func SuggestOptions(ctx context.Context, llm LLM, columns []string, rows []map[string]interface{}, prompt string) (*Suggestion, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to suggest from")
	}
	if len(rows) > maxSampleRows {
		rows = rows[:maxSampleRows]
	}

	dataJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input data: %w", err)
	}

	fullPrompt := fmt.Sprintf(`
You are a data visualization expert. Given the following columns, sample rows and user prompt, configure a scatter chart.

User Prompt: %s

Columns: %s

Sample Rows (JSON): %s

Return a JSON object with these fields:
- title (chart title)
- xColumn ({"key": column name, "type": "time" or "category"})
- yColumns (array of numeric column names)
- groupBy (optional column name whose values split the data into series)
- insights (optional explanation)

IMPORTANT: Return ONLY a valid JSON matching this structure.`, prompt, strings.Join(columns, ", "), string(dataJSON))

	text, err := llm.Generate(ctx, fullPrompt, Params{MaxTokens: 1000, Temperature: 0.3, TopK: 10, TopP: 0.9})
	if err != nil {
		return nil, fmt.Errorf("LLM chart configuration generation error: %w", err)
	}

	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return nil, fmt.Errorf("could not extract valid JSON from LLM response: %w", ErrEmptyResponse)
	}

	var raw suggestionJSON
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response JSON: %w", err)
	}
	if err := checkSuggestion(raw, columns); err != nil {
		return nil, err
	}

	return &Suggestion{
		Title:    raw.Title,
		Insights: raw.Insights,
		Options: chart.Options{
			XColumn:  raw.XColumn,
			YColumns: raw.YColumns,
			GroupBy:  raw.GroupBy,
			Legend:   &chart.LegendOptions{Show: chart.Bool(true)},
		},
	}, nil
}

func checkSuggestion(s suggestionJSON, columns []string) error {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	if s.XColumn.Key == "" || len(s.YColumns) == 0 {
		return fmt.Errorf("invalid chart configuration: missing required fields")
	}
	if !known[s.XColumn.Key] {
		return fmt.Errorf("invalid chart configuration: unknown x column %q", s.XColumn.Key)
	}
	for _, y := range s.YColumns {
		if !known[y] {
			return fmt.Errorf("invalid chart configuration: unknown y column %q", y)
		}
	}
	if s.GroupBy != "" && !known[s.GroupBy] {
		return fmt.Errorf("invalid chart configuration: unknown group column %q", s.GroupBy)
	}
	return nil
}
