package widget

import (
	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
)

// Data is the widget's data attribute: where its rows come from and how
// they are charted.
type Data struct {
	DataSource  string        `json:"dataSource,omitempty"`
	Query       string        `json:"query,omitempty"`
	Table       string        `json:"table,omitempty"`
	Columns     []string      `json:"columns,omitempty"`
	Prompt      string        `json:"prompt,omitempty"`
	File        string        `json:"file,omitempty"`
	Sheet       string        `json:"sheet,omitempty"`
	Rows        []chart.Row   `json:"rows,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Options     chart.Options `json:"options"`
}

// SourceSpec returns the data source part of d.
func (d Data) SourceSpec() datasource.Spec {
	return datasource.Spec{
		Kind:    d.DataSource,
		Query:   d.Query,
		Table:   d.Table,
		Columns: d.Columns,
		Prompt:  d.Prompt,
		File:    d.File,
		Sheet:   d.Sheet,
		Rows:    d.Rows,
	}
}

// DefaultData is the configuration a new widget starts from: ETH staked per
// day, one series per entity category.
func DefaultData() Data {
	rows := []chart.Row{}
	staked := map[string][]float64{
		"CEXs":           {8315623, 8321940, 8330112},
		"Liquid Staking": {12781520, 12801233, 12826980},
		"Staking Pools":  {2874261, 2879402, 2880117},
		"Unidentified":   {4310988, 4312250, 4318734},
	}
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	for i, day := range days {
		for _, category := range []string{"CEXs", "Liquid Staking", "Staking Pools", "Unidentified"} {
			rows = append(rows, chart.Row{
				"day":             day,
				"entity_category": category,
				"staked_eth":      staked[category][i],
			})
		}
	}

	return Data{
		DataSource: datasource.KindInline,
		Rows:       rows,
		Title:      "ETH Staked by Entity Category",
		Options: chart.Options{
			XColumn:  chart.XColumn{Key: "day", Kind: chart.Time{}},
			YColumns: []string{"staked_eth"},
			GroupBy:  "entity_category",
			Legend:   &chart.LegendOptions{Show: chart.Bool(true)},
			XAxis:    &chart.XAxisOptions{TickFormat: "MMM DD"},
			YAxis:    &chart.YAxisOptions{LabelFormat: "0,000.00", Position: "left"},
		},
	}
}
