// Package state models the dashboard's app state and its transitions.
//
// AppState is a value. Every transition returns a new state and leaves the
// old one untouched, so callers can share states freely across goroutines.
package state

import (
	"time"

	"orbital/internal/core"
	"orbital/internal/daterange"
)

type NavItem string

const (
	NavDashboard    NavItem = "dashboard"
	NavAnalytics    NavItem = "analytics"
	NavTransactions NavItem = "transactions"
	NavSettings     NavItem = "settings"
)

func (n NavItem) Valid() bool {
	switch n {
	case NavDashboard, NavAnalytics, NavTransactions, NavSettings:
		return true
	default:
		return false
	}
}

type AppState struct {
	Theme            Theme          `json:"theme"`
	SidebarCollapsed bool           `json:"sidebarCollapsed"`
	ActiveNavItem    NavItem        `json:"activeNavItem"`
	DateRange        core.DateRange `json:"dateRange"`
	GlobalSearch     string         `json:"globalSearch"`
}

// Default is the state of a fresh session.
func Default(now time.Time) AppState {
	return AppState{
		Theme:         DefaultTheme,
		ActiveNavItem: NavDashboard,
		DateRange:     daterange.Default(now),
	}
}

// WithPreferences overlays persisted preferences onto s.
func (s AppState) WithPreferences(p Preferences) AppState {
	s.Theme = p.Theme
	s.SidebarCollapsed = p.SidebarCollapsed
	if !s.Theme.Valid() {
		s.Theme = DefaultTheme
	}
	return s
}

// Action is a single state transition.
type Action interface {
	apply(AppState) AppState
}

// Apply runs actions against s in order.
func Apply(s AppState, actions ...Action) AppState {
	for _, a := range actions {
		if a != nil {
			s = a.apply(s)
		}
	}
	return s
}

// SetTheme ignores invalid themes.
type SetTheme struct{ Theme Theme }

func (a SetTheme) apply(s AppState) AppState {
	if a.Theme.Valid() {
		s.Theme = a.Theme
	}
	return s
}

type ToggleSidebar struct{}

func (ToggleSidebar) apply(s AppState) AppState {
	s.SidebarCollapsed = !s.SidebarCollapsed
	return s
}

type SetSidebarCollapsed struct{ Collapsed bool }

func (a SetSidebarCollapsed) apply(s AppState) AppState {
	s.SidebarCollapsed = a.Collapsed
	return s
}

// SetActiveNavItem ignores unknown items.
type SetActiveNavItem struct{ Item NavItem }

func (a SetActiveNavItem) apply(s AppState) AppState {
	if a.Item.Valid() {
		s.ActiveNavItem = a.Item
	}
	return s
}

// SetDateRange ignores inverted ranges.
type SetDateRange struct{ Range core.DateRange }

func (a SetDateRange) apply(s AppState) AppState {
	if a.Range.Validate() == nil {
		s.DateRange = a.Range
	}
	return s
}

// SetPresetDateRange resolves the preset against Now.
type SetPresetDateRange struct {
	Preset daterange.Preset
	Now    time.Time
}

func (a SetPresetDateRange) apply(s AppState) AppState {
	s.DateRange = daterange.Resolve(a.Preset, a.Now)
	return s
}

type SetGlobalSearch struct{ Term string }

func (a SetGlobalSearch) apply(s AppState) AppState {
	s.GlobalSearch = a.Term
	return s
}
