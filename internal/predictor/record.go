package predictor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is one raw input row keyed by field. Values are kept as text so that
// numeric validation happens in one place (Assemble) whatever the caller's
// transport was.
type Record map[Field]string

// NewRecord copies m into a Record.
func NewRecord(m map[Field]string) Record {
	return Record(m).Clone()
}

// RecordFromValues builds a Record from raw values given in schema order.
func RecordFromValues(schema *Schema, values ...string) (Record, error) {
	if len(values) != schema.Width() {
		return nil, fmt.Errorf("record: got %d values, schema has %d columns", len(values), schema.Width())
	}
	r := make(Record, len(values))
	for i, f := range schema.Fields() {
		r[f] = values[i]
	}
	return r, nil
}

// Value returns the raw text for f.
func (r Record) Value(f Field) (string, bool) {
	v, ok := r[f]
	return v, ok
}

// Clone returns a copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// parseNumeric accepts finite decimal numbers only.
func parseNumeric(f Field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &InvalidNumericInputError{Field: f, Value: raw}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InvalidNumericInputError{Field: f, Value: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidNumericInputError{Field: f, Value: raw}
	}
	return v, nil
}
