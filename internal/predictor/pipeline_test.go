package predictor

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestAssembleScenario(t *testing.T) {
	tbl := testTable(t)
	v, err := Assemble(DefaultSchema, tbl, testRecord())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	want := Vector{1, 1, 1, 2.5, 1, 0, 9.0}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("vector=%v want %v", v, want)
		}
	}

	r := testRecord()
	r[FieldMake] = "Honda"
	if _, err := Assemble(DefaultSchema, tbl, r); !IsUnknownCategory(err) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
}

func TestAssembleNumericValidation(t *testing.T) {
	tbl := testTable(t)
	for _, bad := range []string{"", "abc", "NaN", "Inf", "-inf", "1.2.3", "2,5"} {
		r := testRecord()
		r[FieldEngineSize] = bad
		_, err := Assemble(DefaultSchema, tbl, r)
		if !IsInvalidNumeric(err) {
			t.Fatalf("value %q: expected InvalidNumericInputError, got %v", bad, err)
		}
		if f, ok := FieldOf(err); !ok || f != FieldEngineSize {
			t.Fatalf("value %q: field=%v ok=%v", bad, f, ok)
		}
	}
	r := testRecord()
	r[FieldFuelConsumptionHwy] = " 7.25 "
	v, err := Assemble(DefaultSchema, tbl, r)
	if err != nil || v[6] != 7.25 {
		t.Fatalf("padded number: v=%v err=%v", v, err)
	}
}

func TestAssembleMissingField(t *testing.T) {
	r := testRecord()
	delete(r, FieldTransmission)
	if _, err := Assemble(DefaultSchema, testTable(t), r); !IsMissingField(err) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
}

func TestInferIsDeterministic(t *testing.T) {
	p := NewPipeline(DefaultSchema, testArtifacts(t))
	a, err := p.Infer(testRecord())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	b, err := p.Infer(testRecord())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if math.Float64bits(a) != math.Float64bits(b) {
		t.Fatalf("non-deterministic: %v vs %v", a, b)
	}
	// 200 + 1.5*1 + 0.25*1 + 3*1 + 20*1 - 1*1 + 2*0 + 7*0.5
	if want := 227.25; a != want {
		t.Fatalf("prediction=%v want %v", a, want)
	}
}

func TestInferAppliesScalingBeforeModel(t *testing.T) {
	art := testArtifacts(t)
	p := NewPipeline(DefaultSchema, art)
	raw, err := p.Assemble(testRecord())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	unscaled, _ := art.Model.Predict(raw)
	got, _ := p.Infer(testRecord())
	if got == unscaled {
		t.Fatalf("inference used unscaled vector")
	}
}

func TestInferColumnOrderMatters(t *testing.T) {
	p := NewPipeline(DefaultSchema, testArtifacts(t))
	base, err := p.Infer(testRecord())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	swapped := testRecord()
	swapped[FieldEngineSize], swapped[FieldFuelConsumptionHwy] = swapped[FieldFuelConsumptionHwy], swapped[FieldEngineSize]
	got, err := p.Infer(swapped)
	if err != nil {
		t.Fatalf("infer swapped: %v", err)
	}
	if got == base {
		t.Fatalf("swapping EngineSize and FuelConsumptionHwy did not change the prediction (%v)", got)
	}
}

func TestInferShortCircuits(t *testing.T) {
	// no scaler or model: an encoding failure must still surface first
	p := NewPipeline(DefaultSchema, &Artifacts{Encoding: testTable(t)})
	r := testRecord()
	r[FieldFuelType] = "D"
	if _, err := p.Infer(r); !IsUnknownCategory(err) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
	if _, err := p.Infer(testRecord()); !errors.Is(err, ErrScalerNotLoaded) {
		t.Fatalf("expected ErrScalerNotLoaded, got %v", err)
	}

	art := testArtifacts(t)
	art.Model = nil
	if _, err := NewPipeline(DefaultSchema, art).Infer(testRecord()); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
	if _, err := NewPipeline(DefaultSchema, nil).Infer(testRecord()); !errors.Is(err, ErrEncodingNotLoaded) || !IsNotLoaded(err) {
		t.Fatalf("expected ErrEncodingNotLoaded, got %v", err)
	}
}

func TestInferConcurrent(t *testing.T) {
	p := NewPipeline(DefaultSchema, testArtifacts(t))
	want, err := p.Infer(testRecord())
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Infer(testRecord())
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("prediction drifted under concurrency")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}
