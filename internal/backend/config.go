package backend

import (
	"fmt"
	"strings"

	"orbital/internal/config"
)

// FromAppConfig picks the preference store settings out of the application
// config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Type:         BackendType(strings.ToLower(strings.TrimSpace(appConfig.DataBackend))),
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}
	if !cfg.Type.IsValid() {
		return Config{}, fmt.Errorf("unsupported DATA_BACKEND %q: must be one of %s",
			appConfig.DataBackend, strings.Join(GetBackendTypeStrings(), ", "))
	}
	return cfg, nil
}

// Validate checks that the selected store has what it needs to open.
func (c Config) Validate() error {
	switch c.Type {
	case MemoryBackend:
		return nil
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLITE_DB_PATH is required for the sqlite preference store")
		}
		return nil
	default:
		return fmt.Errorf("invalid backend type %q: must be one of %s",
			c.Type, strings.Join(GetBackendTypeStrings(), ", "))
	}
}

// GetBackendTypes lists the preference stores in order of preference; the
// first is the default.
func GetBackendTypes() []BackendType {
	return []BackendType{MemoryBackend, SQLiteBackend}
}

// GetBackendTypeStrings returns GetBackendTypes as strings.
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}
