package predictor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Meta describes how an artifact set was produced.
type Meta struct {
	// Version is a content fingerprint of the three artifacts.
	Version  string    `json:"version"`
	FittedAt time.Time `json:"fitted_at"`
	Rows     int       `json:"rows"`
	R2       float64   `json:"r2"`
	// Columns is the schema the artifacts were fitted against, in order.
	Columns []Field `json:"columns"`
}

// Artifacts is one immutable set produced by a single FitAll run. The three
// artifacts are only ever used together.
type Artifacts struct {
	Encoding *EncodingTable
	Scaler   *Scaler
	Model    *LinearModel
	Meta     Meta
}

// Validate checks that a is complete and consistent with schema.
func (a *Artifacts) Validate(schema *Schema) error {
	if a == nil {
		return ErrModelNotLoaded
	}
	if len(a.Meta.Columns) > 0 && !schema.Matches(a.Meta.Columns) {
		return fmt.Errorf("artifacts were fitted with columns %v, schema has %v", a.Meta.Columns, schema.Fields())
	}
	if err := a.Encoding.Covers(schema); err != nil {
		return err
	}
	if err := a.Scaler.Validate(schema); err != nil {
		return err
	}
	return a.Model.Validate(schema)
}

// Fingerprint hashes the canonical JSON form of the artifacts together with
// the column order. Identical fits produce identical fingerprints.
func Fingerprint(schema *Schema, enc *EncodingTable, sc *Scaler, m *LinearModel) (string, error) {
	payload := struct {
		Columns  []Field        `json:"columns"`
		Encoding *EncodingTable `json:"encoding"`
		Scaler   *Scaler        `json:"scaler"`
		Model    *LinearModel   `json:"model"`
	}{schema.Fields(), enc, sc, m}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:16], nil
}
