package services

import (
	"context"
	"fmt"

	"orbital/internal/log"
	"orbital/internal/prefs"
	"orbital/internal/state"
)

// PreferenceService persists the theme and sidebar preferences per client
type PreferenceService struct {
	store  prefs.Store
	logger *log.Logger
}

func NewPreferenceService(store prefs.Store, logger *log.Logger) *PreferenceService {
	if logger == nil {
		logger = log.Discard()
	}
	return &PreferenceService{
		store:  store,
		logger: logger.WithComponent(log.ComponentPreference),
	}
}

// StorageKey returns the store key for clientID. The empty client shares
// the bare key.
func StorageKey(clientID string) string {
	if clientID == "" {
		return state.StorageKey
	}
	return state.StorageKey + ":" + clientID
}

// Load returns the stored preferences for clientID. Missing, unreadable or
// corrupt entries yield the defaults.
func (s *PreferenceService) Load(ctx context.Context, clientID string) state.Preferences {
	key := StorageKey(clientID)

	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read preferences, using defaults",
			log.FieldOperation, log.OpRead, log.FieldClientID, clientID, log.FieldError, err)
		return state.DefaultPreferences()
	}
	if !ok {
		return state.DefaultPreferences()
	}

	p, err := state.DecodePreferences(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "Discarding corrupt preferences",
			log.FieldOperation, log.OpDecode, log.FieldClientID, clientID, log.FieldError, err)
	}
	return p
}

// Update applies actions on top of the stored preferences and persists the
// result. Only the theme and the sidebar flag are written.
func (s *PreferenceService) Update(ctx context.Context, clientID string, actions ...state.Action) (state.Preferences, error) {
	current := s.Load(ctx, clientID)
	next := state.Apply(state.AppState{}.WithPreferences(current), actions...).Preferences()

	raw, err := state.EncodePreferences(next)
	if err != nil {
		return current, fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.store.Set(ctx, StorageKey(clientID), raw); err != nil {
		return current, fmt.Errorf("save preferences: %w", err)
	}

	s.logger.InfoContext(ctx, "Updated preferences",
		log.FieldOperation, log.OpUpdate,
		log.FieldClientID, clientID,
		log.FieldTheme, string(next.Theme),
		log.FieldSidebar, next.SidebarCollapsed)

	return next, nil
}
