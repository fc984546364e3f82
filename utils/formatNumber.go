package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatOption configures FormatNumber.
type FormatOption func(*formatConfig)

type formatConfig struct {
	decimals      int
	hasDecimals   bool
	format        string
	percentValues bool
}

// WithDecimals fixes the number of decimal figures used for percentages and
// short-scale output.
func WithDecimals(decimals int) FormatOption {
	return func(c *formatConfig) {
		c.decimals = decimals
		c.hasDecimals = true
	}
}

// WithFormat formats the value with a numeral pattern such as "0,0.00" or "$0.0a".
func WithFormat(format string) FormatOption {
	return func(c *formatConfig) {
		c.format = format
	}
}

// WithPercentValues renders the value as a percentage that is already scaled.
func WithPercentValues() FormatOption {
	return func(c *formatConfig) {
		c.percentValues = true
	}
}

// FormatNumber renders a value for labels, ticks and tooltips.
// nil renders as "-" and non-numeric values are returned as text.
func FormatNumber(value interface{}, opts ...FormatOption) string {
	if value == nil {
		return "-"
	}

	num, ok := ToFloat(value)
	if !ok {
		return cast.ToString(value)
	}

	cfg := &formatConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.percentValues {
		decimals := 2
		if cfg.hasDecimals {
			decimals = cfg.decimals
		}
		return formatDecimal(num, decimals) + "%"
	}

	if cfg.format != "" {
		return FormatNumberByFormat(num, cfg.format, false)
	}

	abs := math.Abs(num)
	switch {
	case abs >= 1000:
		return formatShortScale(num, cfg.decimals, cfg.hasDecimals)
	case abs < 0.0000001:
		return formatDecimal(num, 0)
	case abs < 0.00001:
		return formatDecimal(num, 6)
	case abs < 1:
		return formatDecimal(num, 4)
	}
	return formatDecimal(num, 2)
}

// FormatNumberByFormat formats num with a numeral pattern. The number of
// decimal figures follows the digits after the pattern's ".", a "%" scales by
// 100, a "$" is kept as prefix or suffix, and "a"/"m" abbreviate large values
// unless separators is set.
func FormatNumberByFormat(num float64, format string, separators bool) string {
	if format == "" {
		return FormatNumber(num)
	}

	decimals := fractionDigits(format)
	if strings.Contains(format, "%") {
		return formatDecimal(num*100, decimals) + "%"
	}

	symbol := ""
	if strings.Contains(format, "$") {
		symbol = "$"
	}
	prefix := strings.Index(format, "$") == 0
	attach := func(s string) string {
		if prefix {
			return symbol + s
		}
		return s + symbol
	}

	rounded := formatDecimal(num, decimals)
	if separators || !strings.ContainsAny(format, "ma") {
		return attach(rounded)
	}

	integer, fraction, _ := strings.Cut(rounded, ".")
	n, err := strconv.ParseFloat(strings.ReplaceAll(integer, ",", ""), 64)
	if err != nil {
		return attach(rounded)
	}
	return attach(FormatNumber(n, WithDecimals(len(fraction))))
}

func fractionDigits(format string) int {
	_, fraction, found := strings.Cut(format, ".")
	if !found {
		return 0
	}
	count := 0
	for _, r := range fraction {
		if r == '0' || r == '#' {
			count++
		}
	}
	return count
}

// formatDecimal renders num with fixed decimals and thousands separators.
func formatDecimal(num float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), num)
}

var shortScale = []struct {
	threshold float64
	suffix    string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// formatShortScale renders num as "1.5K", "2.25M" and so on. Without fixed
// decimals up to two figures are kept and trailing zeros dropped.
func formatShortScale(num float64, decimals int, fixed bool) string {
	abs := math.Abs(num)
	scaled, suffix := num, ""
	for _, s := range shortScale {
		if abs >= s.threshold {
			scaled, suffix = num/s.threshold, s.suffix
			break
		}
	}

	if fixed {
		return strconv.FormatFloat(scaled, 'f', decimals, 64) + suffix
	}

	text := strconv.FormatFloat(scaled, 'f', 2, 64)
	if strings.Contains(text, ".") {
		text = strings.TrimRight(strings.TrimRight(text, "0"), ".")
	}
	return text + suffix
}
