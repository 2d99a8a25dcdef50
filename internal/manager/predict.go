package manager

import (
	"context"
	"fmt"
	"strings"

	"co2d/internal/predictor"
)

// Predict runs the full inference pipeline for r against the installed set.
// Input problems come back as the predictor's typed errors; before Load it
// returns ErrNotReady.
func (m *Manager) Predict(ctx context.Context, r predictor.Record) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	set := m.cur.Load()
	if set == nil {
		err := fmt.Errorf("%w: %w", ErrNotReady, predictor.ErrModelNotLoaded)
		m.observe(err, "", nil)
		return Prediction{}, err
	}
	var key string
	if m.cache != nil {
		key = cacheKey(set.version(), m.schema, r)
		if v, ok := m.cache.Get(key); ok {
			m.observe(nil, set.version(), r)
			predictionCacheHits.Inc()
			return Prediction{Value: v, Version: set.version(), Cached: true}, nil
		}
	}
	v, err := set.pipeline.Infer(r)
	if err != nil {
		m.observe(err, set.version(), r)
		return Prediction{}, err
	}
	if m.cache != nil {
		m.cache.Add(key, v)
	}
	m.observe(nil, set.version(), r)
	return Prediction{Value: v, Version: set.version()}, nil
}

func (m *Manager) observe(err error, version string, r predictor.Record) {
	predictionsTotal.WithLabelValues(Outcome(err)).Inc()
	if err == nil {
		m.predictions.Add(1)
		return
	}
	m.predictionErrors.Add(1)
	fields := map[string]any{"error": err.Error(), "outcome": Outcome(err), "input": predictor.IsInputError(err)}
	if f, ok := predictor.FieldOf(err); ok {
		fields["field"] = string(f)
		if v, ok := r.Value(f); ok {
			fields["value"] = v
		}
	}
	m.pub.Publish(Event{Name: EventPredictionFailed, Version: version, Fields: fields})
}

// cacheKey identifies a record under one artifact version. Values are kept as
// sent, so "2.5" and "2.50" are distinct entries with the same result.
func cacheKey(version string, schema *predictor.Schema, r predictor.Record) string {
	var b strings.Builder
	b.WriteString(version)
	for _, f := range schema.Fields() {
		b.WriteByte(0x1f)
		v, _ := r.Value(f)
		b.WriteString(v)
	}
	return b.String()
}

// CacheLen returns the number of cached predictions.
func (m *Manager) CacheLen() int {
	if m.cache == nil {
		return 0
	}
	return m.cache.Len()
}
