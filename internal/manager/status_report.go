package manager

import (
	"time"

	"co2d/pkg/types"
)

// State reports the serving state. A failed reload does not leave the ready
// state because the previous set keeps serving.
func (m *Manager) State() State {
	if m.cur.Load() != nil {
		return StateReady
	}
	if m.lastError() != "" {
		return StateError
	}
	return StateLoading
}

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	now := time.Now()
	resp := types.StatusResponse{
		State:            string(m.State()),
		Store:            m.storeName,
		LoadsTotal:       m.loads.Load(),
		ReloadFailures:   m.reloadFailures.Load(),
		PredictionsTotal: m.predictions.Load(),
		PredictionErrors: m.predictionErrors.Load(),
		CacheEntries:     m.CacheLen(),
		LastError:        m.lastError(),
		UptimeSeconds:    int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
	}
	if set := m.cur.Load(); set != nil {
		resp.Version = set.version()
		resp.Rows = set.meta.Rows
		resp.R2 = set.meta.R2
		if !set.meta.FittedAt.IsZero() {
			resp.FittedAtUnix = set.meta.FittedAt.Unix()
		}
	}
	return resp
}
