package backend

import (
	"context"

	"orbital/internal/prefs"
)

// CleanupFunc releases whatever the store holds open.
type CleanupFunc func() error

// ReadyFunc reports whether the store can serve requests; /readyz calls it.
type ReadyFunc func(ctx context.Context) error

// BackendResult is an opened preference store with its lifecycle hooks.
type BackendResult struct {
	Store   prefs.Store
	Ready   ReadyFunc
	Cleanup CleanupFunc
}

// Factory opens the preference store named by DATA_BACKEND.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config selects and locates a preference store.
type Config struct {
	Type         BackendType
	SQLiteDBPath string
}

// BackendType names a preference store implementation.
type BackendType string

const (
	// MemoryBackend keeps preferences for the life of the process.
	MemoryBackend BackendType = "memory"
	// SQLiteBackend keeps preferences across restarts.
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string {
	return string(bt)
}

func (bt BackendType) IsValid() bool {
	for _, t := range GetBackendTypes() {
		if bt == t {
			return true
		}
	}
	return false
}
