package manager

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"co2d/internal/artifacts"
	"co2d/internal/predictor"
)

type Manager struct {
	store     artifacts.Store
	storeName string
	watchPath string
	schema    *predictor.Schema
	debounce  time.Duration
	pub       EventPublisher
	log       zerolog.Logger

	cur   atomic.Pointer[loadedSet]
	cache *lru.Cache[string, float64]

	// loadMu serializes Load and Reload; serving never takes it.
	loadMu sync.Mutex
	// errMu guards lastErr.
	errMu   sync.Mutex
	lastErr string

	loads            atomic.Uint64
	reloadFailures   atomic.Uint64
	predictions      atomic.Uint64
	predictionErrors atomic.Uint64

	startTime time.Time
}

// New constructs a Manager from cfg. Nothing is loaded until Load is called.
func New(cfg Config) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("manager: artifact store is required")
	}
	m := &Manager{
		store:     cfg.Store,
		storeName: cfg.StoreName,
		watchPath: cfg.WatchPath,
		schema:    cfg.Schema,
		debounce:  cfg.WatchDebounce,
		pub:       cfg.Publisher,
		startTime: time.Now(),
	}
	// Apply defaults if unset
	if m.schema == nil {
		m.schema = predictor.DefaultSchema
	}
	if m.debounce <= 0 {
		m.debounce = defaultWatchDebounce
	}
	if m.pub == nil {
		m.pub = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "manager").Logger()
	} else {
		m.log = zerolog.Nop()
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New[string, float64](cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		m.cache = c
	}
	return m, nil
}

// SetEventPublisher replaces the event sink. Intended for wiring before
// serving starts.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	m.pub = p
}

// Ready reports whether an artifact set is installed.
func (m *Manager) Ready() bool { return m.cur.Load() != nil }

// Schema returns the column layout the manager serves.
func (m *Manager) Schema() *predictor.Schema { return m.schema }

// Version returns the installed artifact version, or "" before Load.
func (m *Manager) Version() string {
	if s := m.cur.Load(); s != nil {
		return s.version()
	}
	return ""
}

// Close releases the artifact store.
func (m *Manager) Close() error { return m.store.Close() }

func (m *Manager) setLastError(err error) {
	m.errMu.Lock()
	defer m.errMu.Unlock()
	if err == nil {
		m.lastErr = ""
		return
	}
	m.lastErr = err.Error()
}

func (m *Manager) lastError() string {
	m.errMu.Lock()
	defer m.errMu.Unlock()
	return m.lastErr
}
