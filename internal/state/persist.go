package state

import (
	"encoding/json"
	"fmt"
)

// StorageKey namespaces the persisted preferences entry.
const StorageKey = "orbital-dashboard-storage"

// Preferences is the subset of AppState that survives restarts. Nothing else
// is ever written to the store.
type Preferences struct {
	Theme            Theme `json:"theme"`
	SidebarCollapsed bool  `json:"sidebarCollapsed"`
}

// DefaultPreferences applies when nothing is stored or the entry is unusable.
func DefaultPreferences() Preferences {
	return Preferences{Theme: DefaultTheme}
}

func (s AppState) Preferences() Preferences {
	return Preferences{Theme: s.Theme, SidebarCollapsed: s.SidebarCollapsed}
}

type envelope struct {
	State *Preferences `json:"state"`
}

// EncodePreferences renders p as {"state":{"theme":...,"sidebarCollapsed":...}}.
func EncodePreferences(p Preferences) (string, error) {
	b, err := json.Marshal(envelope{State: &p})
	if err != nil {
		return "", fmt.Errorf("encode preferences: %w", err)
	}
	return string(b), nil
}

// DecodePreferences parses a stored entry. On any problem it returns the
// defaults together with a non-nil error for the caller to log. An empty
// entry is not an error.
func DecodePreferences(raw string) (Preferences, error) {
	if raw == "" {
		return DefaultPreferences(), nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return DefaultPreferences(), fmt.Errorf("decode preferences: %w", err)
	}
	if env.State == nil {
		return DefaultPreferences(), fmt.Errorf("decode preferences: missing state")
	}

	p := *env.State
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	if !p.Theme.Valid() {
		return DefaultPreferences(), fmt.Errorf("decode preferences: %w: %q", ErrInvalidTheme, p.Theme)
	}
	return p, nil
}
