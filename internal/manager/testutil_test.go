package manager

import (
	"context"
	"testing"

	"co2d/internal/artifacts"
	"co2d/internal/predictor"
)

// fitted returns a small fitted set; shift moves every target so that sets
// with different shifts have different versions and predictions.
func fitted(t *testing.T, shift float64) *predictor.Artifacts {
	t.Helper()
	rows := [][]string{
		{"ACURA", "ILX", "COMPACT", "2.0", "AS5", "Z", "6.7"},
		{"ACURA", "RDX AWD", "SUV - SMALL", "3.5", "AS6", "Z", "8.6"},
		{"FORD", "F-150", "PICKUP TRUCK - STANDARD", "3.5", "AS6", "X", "10.8"},
		{"FORD", "FOCUS", "COMPACT", "2.0", "AM6", "X", "6.4"},
		{"TOYOTA", "COROLLA", "COMPACT", "1.8", "AV", "X", "6.1"},
	}
	targets := []float64{196, 255, 308, 179, 160}
	ts := &predictor.TrainingSet{}
	for i, r := range rows {
		rec, err := predictor.RecordFromValues(predictor.DefaultSchema, r...)
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		ts.Records = append(ts.Records, rec)
		ts.Targets = append(ts.Targets, targets[i]+shift)
	}
	a, err := predictor.FitAll(predictor.DefaultSchema, ts)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	return a
}

func probe() predictor.Record {
	return predictor.Record{
		predictor.FieldMake:               "FORD",
		predictor.FieldModel:              "F-150",
		predictor.FieldVehicleClass:       "COMPACT",
		predictor.FieldEngineSize:         "3.0",
		predictor.FieldTransmission:       "AS6",
		predictor.FieldFuelType:           "X",
		predictor.FieldFuelConsumptionHwy: "9.1",
	}
}

func expected(t *testing.T, a *predictor.Artifacts, r predictor.Record) float64 {
	t.Helper()
	v, err := predictor.NewPipeline(predictor.DefaultSchema, a).Infer(r)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	return v
}

// newFileManager returns a manager over an empty file store in a temp dir.
func newFileManager(t *testing.T, mut func(*Config)) (*Manager, *artifacts.FileStore) {
	t.Helper()
	fs, err := artifacts.NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	cfg := Config{Store: fs, StoreName: "file:" + fs.Dir(), WatchPath: fs.Dir()}
	if mut != nil {
		mut(&cfg)
	}
	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m, fs
}

func save(t *testing.T, s artifacts.Store, a *predictor.Artifacts) {
	t.Helper()
	if err := s.Save(context.Background(), a); err != nil {
		t.Fatalf("save: %v", err)
	}
}
