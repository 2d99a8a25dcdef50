package predictor

import "testing"

// testTable covers every categorical field of DefaultSchema with a few labels.
func testTable(t *testing.T) *EncodingTable {
	t.Helper()
	tbl, err := NewEncodingTable(map[Field][]string{
		FieldMake:         {"Toyota", "Ford"},
		FieldModel:        {"Camry", "F-150", "Corolla"},
		FieldVehicleClass: {"COMPACT", "PICKUP TRUCK - STANDARD"},
		FieldTransmission: {"A6", "AS8", "M6"},
		FieldFuelType:     {"X", "Z", "E"},
	})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	return tbl
}

func testRecord() Record {
	return Record{
		FieldMake:               "Ford",
		FieldModel:              "F-150",
		FieldVehicleClass:       "PICKUP TRUCK - STANDARD",
		FieldEngineSize:         "2.5",
		FieldTransmission:       "AS8",
		FieldFuelType:           "X",
		FieldFuelConsumptionHwy: "9.0",
	}
}

func testArtifacts(t *testing.T) *Artifacts {
	t.Helper()
	return &Artifacts{
		Encoding: testTable(t),
		Scaler: &Scaler{Columns: []ColumnStats{
			{Field: FieldEngineSize, Mean: 2.0, Std: 0.5},
			{Field: FieldFuelConsumptionHwy, Mean: 8.0, Std: 2.0},
		}},
		Model: &LinearModel{Weights: []float64{1.5, 0.25, 3, 20, -1, 2, 7}, Bias: 200},
	}
}

func testTrainingSet() *TrainingSet {
	rows := []struct {
		mk, model, class, engine, trans, fuel, hwy string
		co2                                        float64
	}{
		{"ACURA", "ILX", "COMPACT", "2.0", "AS5", "Z", "6.7", 196},
		{"ACURA", "ILX", "COMPACT", "2.4", "M6", "Z", "7.7", 221},
		{"ACURA", "RDX AWD", "SUV - SMALL", "3.5", "AS6", "Z", "8.6", 255},
		{"BMW", "320i", "COMPACT", "2.0", "A8", "Z", "6.3", 191},
		{"BMW", "X5 xDrive35i", "SUV - STANDARD", "3.0", "A8", "Z", "9.0", 258},
		{"FORD", "F-150", "PICKUP TRUCK - STANDARD", "3.5", "AS6", "X", "10.8", 308},
		{"FORD", "FOCUS", "COMPACT", "2.0", "AM6", "X", "6.4", 179},
		{"TOYOTA", "COROLLA", "COMPACT", "1.8", "AV", "X", "6.1", 160},
		{"TOYOTA", "TACOMA 4WD", "PICKUP TRUCK - SMALL", "4.0", "A5", "X", "11.4", 322},
		{"TOYOTA", "CAMRY", "MID-SIZE", "2.5", "AS6", "X", "6.5", 181},
		{"FORD", "EXPEDITION", "SUV - STANDARD", "3.5", "AS6", "E", "13.1", 293},
		{"BMW", "M3", "COMPACT", "3.0", "M6", "Z", "8.8", 247},
	}
	ts := &TrainingSet{}
	for _, r := range rows {
		ts.Records = append(ts.Records, Record{
			FieldMake:               r.mk,
			FieldModel:              r.model,
			FieldVehicleClass:       r.class,
			FieldEngineSize:         r.engine,
			FieldTransmission:       r.trans,
			FieldFuelType:           r.fuel,
			FieldFuelConsumptionHwy: r.hwy,
		})
		ts.Targets = append(ts.Targets, r.co2)
	}
	return ts
}
