package widget

import (
	"context"
	"errors"
	"testing"

	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	table *datasource.Table
	err   error
	calls int
}

func (c *countingSource) Fetch(context.Context) (*datasource.Table, error) {
	c.calls++
	return c.table, c.err
}

func priceData() Data {
	return Data{
		DataSource: datasource.KindInline,
		Rows: []chart.Row{
			{"t": "2024-01-01", "price": 100},
			{"t": "2024-01-02", "price": 110},
		},
		Options: chart.Options{
			XColumn:  chart.XColumn{Key: "t", Kind: chart.Time{}},
			YColumns: []string{"price"},
		},
	}
}

func TestDefaultDataCharts(t *testing.T) {
	w, err := New(DefaultData())
	require.NoError(t, err)
	require.NoError(t, w.Refresh(context.Background()))

	out, err := w.GetChartData()
	require.NoError(t, err)
	require.Len(t, out.ChartData.Series, 4)
	for _, s := range out.ChartData.Series {
		assert.Len(t, s.Data, 3)
	}
	assert.Equal(t, []string{"day", "entity_category", "staked_eth"}, w.Columns())
	assert.Equal(t, "staked_eth", out.DefaultBuilderData.Options.YColumns[0])
}

func TestGetChartDataInline(t *testing.T) {
	w, err := New(priceData(), WithID("w1"))
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID())

	_, err = w.GetChartData()
	assert.ErrorIs(t, err, ErrNoData)

	require.NoError(t, w.Refresh(context.Background()))
	out, err := w.GetChartData()
	require.NoError(t, err)
	require.Len(t, out.ChartData.Series, 1)
	assert.Equal(t, "price", out.ChartData.Series[0].Name)
	assert.Len(t, out.ChartData.Series[0].Data, 2)

	bytes, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(bytes), `"defaulBuildertData"`)
	assert.Contains(t, string(bytes), `"chartData"`)
}

func TestNewGeneratesID(t *testing.T) {
	a, err := New(priceData())
	require.NoError(t, err)
	b, err := New(priceData())
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSetDataValidates(t *testing.T) {
	bad := priceData()
	bad.Options.YColumns = nil
	_, err := New(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidData)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Problems)

	bad = priceData()
	bad.DataSource = "mongo"
	_, err = New(bad)
	assert.ErrorIs(t, err, ErrInvalidData)

	bad = priceData()
	bad.Options.XColumn.Key = ""
	_, err = New(bad)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestSetDataNotifiesAndDropsRows(t *testing.T) {
	var seen []Data
	src := &countingSource{table: &datasource.Table{Columns: []string{"t", "price"}, Rows: priceData().Rows}}
	w, err := New(priceData(), WithSource(src), WithChangeListener(func(d Data) { seen = append(seen, d) }))
	require.NoError(t, err)
	require.Len(t, seen, 1)

	require.NoError(t, w.Refresh(context.Background()))
	assert.Len(t, w.Rows(), 2)
	assert.Equal(t, 1, src.calls)

	next := priceData()
	next.Title = "Prices"
	require.NoError(t, w.SetData(next))
	assert.Len(t, seen, 2)
	assert.Equal(t, "Prices", w.Data().Title)
	assert.Nil(t, w.Rows())

	bad := next
	bad.Options.YColumns = []string{}
	assert.Error(t, w.SetData(bad))
	assert.Len(t, seen, 2)
	assert.Equal(t, "Prices", w.Data().Title)
}

func TestRefreshErrors(t *testing.T) {
	boom := errors.New("boom")
	w, err := New(priceData(), WithSource(&countingSource{err: boom}))
	require.NoError(t, err)
	assert.ErrorIs(t, w.Refresh(context.Background()), boom)

	pg := priceData()
	pg.DataSource = datasource.KindPostgres
	pg.Query = "SELECT 1"
	w, err = New(pg)
	require.NoError(t, err)
	assert.ErrorIs(t, w.Refresh(context.Background()), datasource.ErrUnsupported)
}

func TestRegister(t *testing.T) {
	reg := Register()
	assert.Contains(t, reg.Types, `"xColumn"`)
	assert.Equal(t, "entity_category", reg.DefaultData.Options.GroupBy)
	assert.NoError(t, Validate(reg.DefaultData))
}

func TestGetFormSchema(t *testing.T) {
	fs := GetFormSchema([]string{"day", "value"})

	options := fs.BuilderSchema.DataSchema["properties"].(M)["options"].(M)
	xKey := options["properties"].(M)["xColumn"].(M)["properties"].(M)["key"].(M)
	assert.Equal(t, []string{"day", "value"}, xKey["enum"])

	embeded := fs.EmbededSchema.DataSchema["properties"].(M)
	assert.Contains(t, embeded, "options")
	assert.NotContains(t, embeded, "dataSource")

	assert.Equal(t, "Categorization", fs.BuilderSchema.UISchema["type"])
	assert.Len(t, fs.BuilderSchema.UISchema["elements"], 5)
	assert.Len(t, fs.EmbededSchema.UISchema["elements"], 5)

	bare := GetFormSchema(nil)
	bareOptions := bare.BuilderSchema.DataSchema["properties"].(M)["options"].(M)
	groupBy := bareOptions["properties"].(M)["groupBy"].(M)
	assert.NotContains(t, groupBy, "enum")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Problems: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())
}
