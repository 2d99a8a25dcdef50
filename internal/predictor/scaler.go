package predictor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds the standardisation parameters of one numeric column.
type ColumnStats struct {
	Field Field   `json:"field"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
}

// Scaler standardises the numeric columns of a feature vector with parameters
// fixed at fit time. It is never refitted while serving.
type Scaler struct {
	Columns []ColumnStats `json:"columns"`
}

// FitScaler computes the mean and population standard deviation of every
// numeric column of schema across rows. A constant column gets Std 1, so it
// scales to 0 instead of dividing by zero.
func FitScaler(schema *Schema, rows []Vector) (*Scaler, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	s := &Scaler{}
	for _, f := range schema.Numeric() {
		idx, _ := schema.Index(f)
		col := make([]float64, len(rows))
		for i, r := range rows {
			if len(r) != schema.Width() {
				return nil, fmt.Errorf("row %d: %w", i, &VectorWidthError{Got: len(r), Want: schema.Width()})
			}
			col[i] = r[idx]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Columns = append(s.Columns, ColumnStats{Field: f, Mean: mean, Std: std})
	}
	return s, nil
}

// Stats returns the parameters stored for f.
func (s *Scaler) Stats(f Field) (ColumnStats, bool) {
	if s == nil {
		return ColumnStats{}, false
	}
	for _, c := range s.Columns {
		if c.Field == f {
			return c, true
		}
	}
	return ColumnStats{}, false
}

// Transform returns a copy of v with each numeric column replaced by
// (value - mean) / std. Other slots pass through unchanged and v itself is
// not modified.
func (s *Scaler) Transform(schema *Schema, v Vector) (Vector, error) {
	if s == nil {
		return nil, ErrScalerNotLoaded
	}
	if len(v) != schema.Width() {
		return nil, &VectorWidthError{Got: len(v), Want: schema.Width()}
	}
	out := v.Clone()
	for _, c := range s.Columns {
		idx, ok := schema.Index(c.Field)
		if !ok {
			return nil, fmt.Errorf("%w: scaler column %s", ErrUnknownField, c.Field)
		}
		out[idx] = (out[idx] - c.Mean) / c.Std
	}
	return out, nil
}

// Validate checks that s carries usable parameters for exactly the numeric
// columns of schema.
func (s *Scaler) Validate(schema *Schema) error {
	if s == nil {
		return ErrScalerNotLoaded
	}
	numeric := schema.Numeric()
	if len(s.Columns) != len(numeric) {
		return fmt.Errorf("scaler has %d columns, schema has %d numeric columns", len(s.Columns), len(numeric))
	}
	for _, f := range numeric {
		c, ok := s.Stats(f)
		if !ok {
			return fmt.Errorf("scaler has no parameters for %s", f)
		}
		if !finite(c.Mean) || !finite(c.Std) || c.Std <= 0 {
			return fmt.Errorf("scaler parameters for %s are invalid (mean=%v std=%v)", f, c.Mean, c.Std)
		}
	}
	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
