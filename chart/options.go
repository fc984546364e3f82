package chart

// Defaults applied by Resolve.
const (
	DefaultPaddingTop      = 60
	DefaultPaddingBottom   = 60
	DefaultPaddingLeft     = "10%"
	DefaultPaddingRight    = "10%"
	DefaultTimeTickFormat  = "YYYY-MM-DD"
	DefaultTooltipDateTime = "YYYY-MM-DD HH:mm"

	xNameGapTitled = 25
	yNameGapTitled = 40
	nameGapBare    = 15
)

// Settings is Options with every default applied.
type Settings struct {
	XKey               string
	XKind              XKind
	YColumns           []string
	GroupBy            string
	SeriesOptions      map[string]SeriesOption
	Smooth             bool
	Stacking           bool
	ShowSymbol         bool
	ShowDataLabels     bool
	Percentage         bool
	MergeDuplicateData bool

	Legend LegendSettings
	XAxis  XAxisSettings
	YAxis  YAxisSettings
	Grid   Grid
}

// LegendSettings is LegendOptions with defaults applied.
type LegendSettings struct {
	Show      bool
	Scroll    bool
	Position  string
	FontColor string
}

// XAxisSettings is XAxisOptions with defaults applied.
type XAxisSettings struct {
	Title      string
	FontColor  string
	TickFormat string
	Reverse    bool
	NameGap    int
}

// YAxisSettings is YAxisOptions with defaults applied.
type YAxisSettings struct {
	Title       string
	FontColor   string
	TickFormat  string
	LabelFormat string
	Position    string
	NameGap     int
}

// Resolve applies the defaults of every optional field.
func (o Options) Resolve() Settings {
	s := Settings{
		XKey:               o.XColumn.Key,
		XKind:              o.XColumn.Kind,
		YColumns:           o.YColumns,
		GroupBy:            o.GroupBy,
		SeriesOptions:      make(map[string]SeriesOption, len(o.SeriesOptions)),
		Smooth:             value(o.Smooth),
		Stacking:           value(o.Stacking),
		ShowSymbol:         value(o.ShowSymbol),
		ShowDataLabels:     value(o.ShowDataLabels),
		Percentage:         value(o.Percentage),
		MergeDuplicateData: value(o.MergeDuplicateData),
	}
	if s.XKind == nil {
		s.XKind = Category{}
	}
	for _, opt := range o.SeriesOptions {
		s.SeriesOptions[opt.Key] = opt
	}

	if o.Legend != nil {
		s.Legend = LegendSettings{
			Show:      value(o.Legend.Show),
			Scroll:    value(o.Legend.Scroll),
			Position:  o.Legend.Position,
			FontColor: o.Legend.FontColor,
		}
	}

	s.XAxis.NameGap = nameGapBare
	if o.XAxis != nil {
		s.XAxis.Title = o.XAxis.Title
		s.XAxis.FontColor = o.XAxis.FontColor
		s.XAxis.TickFormat = o.XAxis.TickFormat
		s.XAxis.Reverse = value(o.XAxis.ReverseValues)
		if o.XAxis.Title != "" {
			s.XAxis.NameGap = xNameGapTitled
		}
	}
	if _, ok := s.XKind.(Time); ok && s.XAxis.TickFormat == "" {
		s.XAxis.TickFormat = DefaultTimeTickFormat
	}

	s.YAxis.NameGap = nameGapBare
	if o.YAxis != nil {
		s.YAxis.Title = o.YAxis.Title
		s.YAxis.FontColor = o.YAxis.FontColor
		s.YAxis.TickFormat = o.YAxis.TickFormat
		s.YAxis.LabelFormat = o.YAxis.LabelFormat
		s.YAxis.Position = o.YAxis.Position
		if o.YAxis.Title != "" {
			s.YAxis.NameGap = yNameGapTitled
		}
	}

	s.Grid = Grid{
		Top:          DefaultPaddingTop,
		Bottom:       DefaultPaddingBottom,
		Left:         DefaultPaddingLeft,
		Right:        DefaultPaddingRight,
		ContainLabel: true,
	}
	if p := o.Padding; p != nil {
		if p.Top != nil {
			s.Grid.Top = *p.Top
		}
		if p.Bottom != nil {
			s.Grid.Bottom = *p.Bottom
		}
		if p.Left != nil {
			s.Grid.Left = *p.Left
		}
		if p.Right != nil {
			s.Grid.Right = *p.Right
		}
	}
	return s
}

func value(b *bool) bool {
	return b != nil && *b
}
