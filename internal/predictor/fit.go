package predictor

import (
	"fmt"
	"time"
)

// TrainingSet is a labelled dataset: one target per record.
type TrainingSet struct {
	Records []Record
	Targets []float64
}

// Len is the number of rows.
func (ts *TrainingSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Records)
}

// FitAll produces a complete artifact set from ts:
//
//  1. fit the encoding table over every categorical column,
//  2. assemble every row with that table,
//  3. fit the scaler over the numeric columns,
//  4. scale every row,
//  5. fit the linear model on the scaled matrix against the targets.
//
// The result depends only on ts, so fitting the same data twice yields the
// same Version.
func FitAll(schema *Schema, ts *TrainingSet) (*Artifacts, error) {
	if ts.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if len(ts.Targets) != len(ts.Records) {
		return nil, fmt.Errorf("fit: %d records but %d targets", len(ts.Records), len(ts.Targets))
	}
	for i, t := range ts.Targets {
		if !finite(t) {
			return nil, fmt.Errorf("fit: target of row %d is not finite", i)
		}
	}

	enc, err := FitEncodingTable(schema, ts.Records)
	if err != nil {
		return nil, fmt.Errorf("fit encoding table: %w", err)
	}

	rows := make([]Vector, len(ts.Records))
	for i, r := range ts.Records {
		v, err := Assemble(schema, enc, r)
		if err != nil {
			return nil, fmt.Errorf("assemble row %d: %w", i, err)
		}
		rows[i] = v
	}

	sc, err := FitScaler(schema, rows)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	for i, v := range rows {
		scaled, err := sc.Transform(schema, v)
		if err != nil {
			return nil, fmt.Errorf("scale row %d: %w", i, err)
		}
		rows[i] = scaled
	}

	model, err := FitLinear(rows, ts.Targets)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}
	r2, err := model.Score(rows, ts.Targets)
	if err != nil {
		return nil, fmt.Errorf("score model: %w", err)
	}
	version, err := Fingerprint(schema, enc, sc, model)
	if err != nil {
		return nil, err
	}
	return &Artifacts{
		Encoding: enc,
		Scaler:   sc,
		Model:    model,
		Meta: Meta{
			Version:  version,
			FittedAt: time.Now().UTC(),
			Rows:     len(rows),
			R2:       r2,
			Columns:  schema.Fields(),
		},
	}, nil
}
