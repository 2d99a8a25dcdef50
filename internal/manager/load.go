package manager

import (
	"context"
	"time"

	"co2d/internal/artifacts"
	"co2d/internal/predictor"
)

// Load reads and validates the current artifact set and installs it. It is
// meant for startup: the error is returned as is (an *artifacts.ArtifactLoadError
// for anything the store or validation rejects) and the caller should treat it
// as fatal.
func (m *Manager) Load(ctx context.Context) error {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	a, err := artifacts.LoadValidated(ctx, m.store, m.schema)
	if err != nil {
		m.setLastError(err)
		artifactLoadsTotal.WithLabelValues("error").Inc()
		m.pub.Publish(Event{Name: EventLoadFailed, Fields: map[string]any{"error": err.Error()}})
		m.log.Error().Err(err).Str("store", m.storeName).Msg("artifact load failed")
		return err
	}
	m.install(a)
	return nil
}

// Reload loads the current artifact set and swaps it in. If the store still
// points at the installed version nothing changes. On failure the previous
// set keeps serving, the error is recorded for Status and a reload_failed
// event is published.
func (m *Manager) Reload(ctx context.Context) error {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	a, err := artifacts.LoadValidated(ctx, m.store, m.schema)
	if err != nil {
		m.reloadFailures.Add(1)
		m.setLastError(err)
		artifactLoadsTotal.WithLabelValues("error").Inc()
		m.pub.Publish(Event{Name: EventReloadFailed, Version: m.Version(), Fields: map[string]any{"error": err.Error()}})
		m.log.Warn().Err(err).Str("serving", m.Version()).Msg("artifact reload failed; keeping current set")
		return err
	}
	if cur := m.cur.Load(); cur != nil && cur.version() == a.Meta.Version {
		m.log.Debug().Str("version", a.Meta.Version).Msg("artifact set unchanged")
		m.setLastError(nil)
		return nil
	}
	m.install(a)
	return nil
}

func (m *Manager) install(a *predictor.Artifacts) {
	set := &loadedSet{
		pipeline: predictor.NewPipeline(m.schema, a),
		meta:     a.Meta,
		loadedAt: time.Now(),
	}
	prev := m.cur.Swap(set)
	if m.cache != nil {
		// entries are keyed by version so none can be served stale; purge to
		// free the memory held by the old set
		m.cache.Purge()
	}
	m.loads.Add(1)
	m.setLastError(nil)
	artifactLoadsTotal.WithLabelValues("ok").Inc()
	artifactInfo.Reset()
	artifactInfo.WithLabelValues(a.Meta.Version).Set(1)
	fields := map[string]any{"rows": a.Meta.Rows, "r2": a.Meta.R2}
	if prev != nil {
		fields["previous"] = prev.version()
	}
	m.pub.Publish(Event{Name: EventArtifactsLoaded, Version: a.Meta.Version, Fields: fields})
	m.log.Info().Str("version", a.Meta.Version).Int("rows", a.Meta.Rows).Float64("r2", a.Meta.R2).Msg("artifacts loaded")
}
