// Package daterange resolves named presets into concrete date ranges
// relative to the current instant.
package daterange

import (
	"errors"
	"strings"
	"time"

	"orbital/internal/core"
)

type Preset string

const (
	Today      Preset = "today"
	Last7Days  Preset = "last7days"
	Last30Days Preset = "last30days"
	ThisMonth  Preset = "thisMonth"
	LastMonth  Preset = "lastMonth"
)

var ErrUnknownPreset = errors.New("unknown date range preset")

// Info describes a preset for pickers.
type Info struct {
	Preset Preset `json:"preset"`
	Label  string `json:"label"`
}

var presets = []Info{
	{Today, "Today"},
	{Last7Days, "Last 7 days"},
	{Last30Days, "Last 30 days"},
	{ThisMonth, "This month"},
	{LastMonth, "Last month"},
}

// Presets lists every preset in display order.
func Presets() []Info {
	return append([]Info(nil), presets...)
}

func (p Preset) Valid() bool {
	for _, info := range presets {
		if info.Preset == p {
			return true
		}
	}
	return false
}

// ParsePreset matches preset names case-insensitively.
func ParsePreset(s string) (Preset, error) {
	s = strings.TrimSpace(s)
	for _, info := range presets {
		if strings.EqualFold(string(info.Preset), s) {
			return info.Preset, nil
		}
	}
	return "", ErrUnknownPreset
}

// Resolve returns the concrete range for p. Unknown presets resolve to Default.
func Resolve(p Preset, now time.Time) core.DateRange {
	switch p {
	case Today:
		return core.DateRange{From: now, To: now}
	case Last7Days:
		return core.DateRange{From: now.AddDate(0, 0, -7), To: now}
	case Last30Days:
		return core.DateRange{From: now.AddDate(0, 0, -30), To: now}
	case ThisMonth:
		return core.DateRange{From: StartOfMonth(now), To: now}
	case LastMonth:
		prev := StartOfMonth(now).AddDate(0, -1, 0)
		return core.DateRange{From: prev, To: EndOfMonth(prev)}
	default:
		return Default(now)
	}
}

// Default is the range the dashboard opens with: the current month up to now.
func Default(now time.Time) core.DateRange {
	return core.DateRange{From: StartOfMonth(now), To: now}
}

// StartOfMonth returns the first instant of t's month in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// EndOfDay returns the last nanosecond of t's day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
