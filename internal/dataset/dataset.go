// Package dataset reads the labelled fuel-consumption CSV used for fitting.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"co2d/internal/common/fsutil"
	"co2d/internal/predictor"
)

// Target is the header of the label column.
const Target = "CO2 Emissions(g/km)"

// Headers maps each schema field to its CSV header.
var Headers = map[predictor.Field]string{
	predictor.FieldMake:               "Make",
	predictor.FieldModel:              "Model",
	predictor.FieldVehicleClass:       "Vehicle Class",
	predictor.FieldEngineSize:         "Engine Size(L)",
	predictor.FieldTransmission:       "Transmission",
	predictor.FieldFuelType:           "Fuel Type",
	predictor.FieldFuelConsumptionHwy: "Fuel Consumption Hwy (L/100 km)",
}

// RowError locates a malformed row. Line is 1-based and counts the header.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *RowError) Unwrap() error { return e.Err }

// Load opens path (a leading ~ is expanded) and reads it with Read.
func Load(path string, schema *predictor.Schema) (*predictor.TrainingSet, error) {
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f, schema)
}

// Read parses a CSV stream. Columns are located by header name; unknown
// columns are ignored and a missing feature or target column is an error.
// Feature values are kept as text and validated later by assembly; the target
// must be a finite number.
func Read(r io.Reader, schema *predictor.Schema) (*predictor.TrainingSet, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, predictor.ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		pos[h] = i
	}
	cols := make(map[predictor.Field]int, schema.Width())
	for _, f := range schema.Fields() {
		name, ok := Headers[f]
		if !ok {
			name = string(f)
		}
		i, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("dataset has no %q column", name)
		}
		cols[f] = i
	}
	targetCol, ok := pos[Target]
	if !ok {
		return nil, fmt.Errorf("dataset has no %q column", Target)
	}

	ts := &predictor.TrainingSet{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		row := make(predictor.Record, len(cols))
		for f, i := range cols {
			row[f] = strings.TrimSpace(rec[i])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[targetCol]), 64)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, &RowError{Line: line, Err: fmt.Errorf("invalid target %q", rec[targetCol])}
		}
		ts.Records = append(ts.Records, row)
		ts.Targets = append(ts.Targets, y)
	}
	if ts.Len() == 0 {
		return nil, predictor.ErrEmptyDataset
	}
	return ts, nil
}
