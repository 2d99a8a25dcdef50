package manager

import (
	"time"

	"github.com/rs/zerolog"

	"co2d/internal/artifacts"
	"co2d/internal/predictor"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultWatchDebounce = 200 * time.Millisecond
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// Store is where artifact sets are read from. Required.
	Store artifacts.Store
	// StoreName describes the store in /status, e.g. "file:/var/lib/co2d".
	StoreName string
	// WatchPath is the file or directory Watch observes. For a file store this
	// is its directory; for a bolt store, the database file.
	WatchPath string
	// Schema defaults to predictor.DefaultSchema.
	Schema *predictor.Schema
	// CacheSize bounds the prediction cache; 0 disables it.
	CacheSize int
	// WatchDebounce coalesces bursts of file events into one reload.
	WatchDebounce time.Duration
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}
