// Package widget hosts a scatter chart: it holds the widget data, fetches the
// bound rows and builds the chart.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/scom-repos/scom-scatter-chart-sub000/chart"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/yaoapp/kun/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrNoData is returned when the chart is asked for before rows were fetched.
	ErrNoData = errors.New("widget has no data")
	// ErrInvalidData is returned for widget data that fails validation.
	ErrInvalidData = errors.New("invalid widget data")
)

// SourceFactory opens the source described by a widget's data.
type SourceFactory interface {
	Open(spec datasource.Spec) (datasource.Source, error)
}

// ChartData is the output of GetChartData.
type ChartData struct {
	ChartData          chart.RenderSpec `json:"chartData"`
	DefaultBuilderData Data             `json:"defaulBuildertData"`
}

// Widget is one chart instance. It is safe for concurrent use.
type Widget struct {
	id        string
	factory   SourceFactory
	source    datasource.Source
	listeners []func(Data)

	mu    sync.RWMutex
	data  Data
	table *datasource.Table
	gen   uint64
}

// Option configures a Widget.
type Option func(*Widget)

// WithID sets the widget id instead of a random one.
func WithID(id string) Option {
	return func(w *Widget) {
		w.id = id
	}
}

// WithSource binds a fixed source, ignoring the data source of the data.
func WithSource(src datasource.Source) Option {
	return func(w *Widget) {
		w.source = src
	}
}

// WithSourceFactory opens sources from the widget data.
func WithSourceFactory(f SourceFactory) Option {
	return func(w *Widget) {
		w.factory = f
	}
}

// WithChangeListener calls fn after every accepted SetData.
func WithChangeListener(fn func(Data)) Option {
	return func(w *Widget) {
		w.listeners = append(w.listeners, fn)
	}
}

// New returns a widget holding data.
func New(data Data, opts ...Option) (*Widget, error) {
	w := &Widget{factory: datasource.Factory{}}
	for _, opt := range opts {
		opt(w)
	}
	if w.id == "" {
		w.id = uuid.NewString()
	}
	if err := w.SetData(data); err != nil {
		return nil, err
	}
	return w, nil
}

// ID returns the widget id.
func (w *Widget) ID() string {
	return w.id
}

// Data returns the current widget data.
func (w *Widget) Data() Data {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.data
}

// SetData validates and replaces the widget data. Previously fetched rows are
// dropped.
func (w *Widget) SetData(data Data) error {
	if err := Validate(data); err != nil {
		return err
	}

	w.mu.Lock()
	w.data = data
	w.table = nil
	w.gen++
	w.mu.Unlock()

	log.With(log.F{"widget": w.id, "dataSource": data.DataSource}).Trace("[widget] data set")
	for _, fn := range w.listeners {
		fn(data)
	}
	return nil
}

// Refresh fetches the rows of the bound source. A result that arrives after
// a newer SetData is discarded.
func (w *Widget) Refresh(ctx context.Context) error {
	w.mu.RLock()
	data, gen := w.data, w.gen
	w.mu.RUnlock()

	src := w.source
	if src == nil {
		var err error
		src, err = w.factory.Open(data.SourceSpec())
		if err != nil {
			return fmt.Errorf("widget %s: %w", w.id, err)
		}
	}

	table, err := src.Fetch(ctx)
	if err != nil {
		log.With(log.F{"widget": w.id}).Error("[widget] fetch failed: %v", err)
		return fmt.Errorf("widget %s: %w", w.id, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		log.Trace("[widget] %s discarding stale rows", w.id)
		return nil
	}
	w.table = table
	log.Trace("[widget] %s fetched %d rows", w.id, len(table.Rows))
	return nil
}

// Rows returns the fetched rows.
func (w *Widget) Rows() []chart.Row {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.table == nil {
		return nil
	}
	return w.table.Rows
}

// Columns returns the column names of the fetched rows.
func (w *Widget) Columns() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.table == nil {
		return nil
	}
	return w.table.Columns
}

// GetChartData builds the chart from the fetched rows.
func (w *Widget) GetChartData() (ChartData, error) {
	w.mu.RLock()
	table, options := w.table, w.data.Options
	w.mu.RUnlock()

	if table == nil {
		return ChartData{}, ErrNoData
	}
	return ChartData{
		ChartData:          chart.GetChartData(table.Rows, options),
		DefaultBuilderData: DefaultData(),
	}, nil
}

// FormSchema returns the editing forms for the fetched columns.
func (w *Widget) FormSchema() FormSchema {
	return GetFormSchema(w.Columns())
}
