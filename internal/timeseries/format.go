package timeseries

import "time"

// Granularity selects how a timestamp is rendered for display.
type Granularity int

const (
	Hour Granularity = iota
	Day
)

func (g Granularity) String() string {
	switch g {
	case Hour:
		return "hour"
	case Day:
		return "day"
	default:
		return "unknown"
	}
}

// Default display layouts, matching the medium date-time and long date
// formats of the dashboard.
const (
	DefaultHourLayout = "Jan 2, 2006 3:04 PM"
	DefaultDayLayout  = "January 2, 2006"
)

// LabelFormatter turns a timestamp into a display label. Labels are for
// presentation only; bucketing never compares them.
type LabelFormatter interface {
	Format(t time.Time, g Granularity) string
}

// FormatterFunc adapts a function to LabelFormatter.
type FormatterFunc func(t time.Time, g Granularity) string

// Format calls f.
func (f FormatterFunc) Format(t time.Time, g Granularity) string { return f(t, g) }

// LayoutFormatter formats with Go reference layouts in a fixed location.
type LayoutFormatter struct {
	Location   *time.Location
	HourLayout string
	DayLayout  string
}

// NewLayoutFormatter fills empty fields with defaults.
func NewLayoutFormatter(loc *time.Location, hourLayout, dayLayout string) LayoutFormatter {
	if loc == nil {
		loc = time.UTC
	}
	if hourLayout == "" {
		hourLayout = DefaultHourLayout
	}
	if dayLayout == "" {
		dayLayout = DefaultDayLayout
	}
	return LayoutFormatter{Location: loc, HourLayout: hourLayout, DayLayout: dayLayout}
}

// Format implements LabelFormatter.
func (f LayoutFormatter) Format(t time.Time, g Granularity) string {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	layout := f.DayLayout
	if g == Hour {
		layout = f.HourLayout
	}
	return t.In(loc).Format(layout)
}
