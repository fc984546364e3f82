package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// momentTokens maps moment.js style tokens to Go layout elements, longest first.
var momentTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"SSS", "000"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"ZZ", "-0700"},
	{"M", "1"},
	{"D", "2"},
	{"H", "15"},
	{"h", "3"},
	{"m", "4"},
	{"s", "5"},
	{"A", "PM"},
	{"a", "pm"},
	{"Z", "-07:00"},
}

// MomentLayout converts a moment.js pattern such as "YYYY-MM-DD HH:mm" to a
// Go time layout. Text inside [brackets] is kept literally.
func MomentLayout(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i:], ']')
			if end > 0 {
				b.WriteString(pattern[i+1 : i+end])
				i += end + 1
				continue
			}
		}

		matched := false
		for _, t := range momentTokens {
			if strings.HasPrefix(pattern[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

// ParseTime converts value to a time. Strings are parsed with the moment
// pattern when one is given and detected otherwise; numbers are epoch
// milliseconds.
func ParseTime(value interface{}, pattern string) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
		return time.Time{}, fmt.Errorf("nil time")
	case nil:
		return time.Time{}, fmt.Errorf("empty time value")
	case string:
		return parseTimeString(v, pattern)
	case []byte:
		return parseTimeString(string(v), pattern)
	}

	if ms, ok := ToFloat(value); ok {
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported time value %v (%T)", value, value)
}

func parseTimeString(s, pattern string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if pattern != "" {
		return time.Parse(MomentLayout(pattern), s)
	}
	return dateparse.ParseAny(s)
}

// FormatTime renders t with a moment.js pattern.
func FormatTime(t time.Time, pattern string) string {
	return t.Format(MomentLayout(pattern))
}
