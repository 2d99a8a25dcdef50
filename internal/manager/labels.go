package manager

import (
	"fmt"

	"co2d/internal/predictor"
)

// Labels returns the valid labels of every categorical field together with
// the artifact version they belong to. The lists are the exact encoding-table
// domains, in code order.
func (m *Manager) Labels() (map[predictor.Field][]string, string, error) {
	set := m.cur.Load()
	if set == nil {
		return nil, "", fmt.Errorf("%w: %w", ErrNotReady, predictor.ErrEncodingNotLoaded)
	}
	enc := set.pipeline.Artifacts().Encoding
	out := make(map[predictor.Field][]string, len(m.schema.Categorical()))
	for _, f := range m.schema.Categorical() {
		labels, _ := enc.Labels(f)
		out[f] = labels
	}
	return out, set.version(), nil
}

// LabelsFor returns the valid labels of one categorical field.
func (m *Manager) LabelsFor(field predictor.Field) ([]string, string, error) {
	set := m.cur.Load()
	if set == nil {
		return nil, "", fmt.Errorf("%w: %w", ErrNotReady, predictor.ErrEncodingNotLoaded)
	}
	if k, ok := m.schema.KindOf(field); !ok || k != predictor.Categorical {
		return nil, "", fmt.Errorf("%w: %s is not a categorical field", predictor.ErrUnknownField, field)
	}
	labels, ok := set.pipeline.Artifacts().Encoding.Labels(field)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", predictor.ErrUnknownField, field)
	}
	return labels, set.version(), nil
}
