package manager

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"co2d/internal/artifacts"
	"co2d/internal/predictor"
)

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error without a store")
	}
}

func TestPredictBeforeLoadIsNotReady(t *testing.T) {
	m, _ := newFileManager(t, nil)
	if m.Ready() || m.State() != StateLoading {
		t.Fatalf("fresh manager ready=%v state=%s", m.Ready(), m.State())
	}
	_, err := m.Predict(context.Background(), probe())
	if !IsNotReady(err) {
		t.Fatalf("want not ready, got %v", err)
	}
	if !predictor.IsNotLoaded(err) {
		t.Fatalf("not-ready error should carry the not-loaded kind: %v", err)
	}
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", StatusCode(err))
	}
	if _, _, err := m.Labels(); !IsNotReady(err) {
		t.Fatalf("labels before load: %v", err)
	}
}

func TestLoadFailureIsFatalAndReported(t *testing.T) {
	pub := NewMemoryPublisher()
	m, _ := newFileManager(t, func(c *Config) { c.Publisher = pub })
	err := m.Load(context.Background())
	if !artifacts.IsArtifactLoad(err) {
		t.Fatalf("want ArtifactLoadError, got %v", err)
	}
	if m.Ready() || m.State() != StateError {
		t.Fatalf("state=%s", m.State())
	}
	if st := m.Status(); st.LastError == "" || st.LoadsTotal != 0 {
		t.Fatalf("status=%+v", st)
	}
	if names := pub.Names(); len(names) != 1 || names[0] != EventLoadFailed {
		t.Fatalf("events=%v", names)
	}
}

func TestLoadAndPredict(t *testing.T) {
	pub := NewMemoryPublisher()
	m, fs := newFileManager(t, func(c *Config) { c.Publisher = pub })
	a := fitted(t, 0)
	save(t, fs, a)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Ready() || m.Version() != a.Meta.Version {
		t.Fatalf("ready=%v version=%q", m.Ready(), m.Version())
	}
	p, err := m.Predict(context.Background(), probe())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if want := expected(t, a, probe()); p.Value != want {
		t.Fatalf("prediction=%v want %v", p.Value, want)
	}
	if p.Version != a.Meta.Version || p.Cached {
		t.Fatalf("prediction=%+v", p)
	}
	st := m.Status()
	if st.State != "ready" || st.Version != a.Meta.Version || st.Rows != 5 || st.LoadsTotal != 1 || st.PredictionsTotal != 1 {
		t.Fatalf("status=%+v", st)
	}
	if st.FittedAtUnix == 0 || st.Store == "" {
		t.Fatalf("status missing metadata: %+v", st)
	}
	evts := pub.Events()
	if len(evts) != 1 || evts[0].Name != EventArtifactsLoaded || evts[0].Version != a.Meta.Version {
		t.Fatalf("events=%+v", evts)
	}
	if got := testutil.ToFloat64(artifactInfo.WithLabelValues(a.Meta.Version)); got != 1 {
		t.Fatalf("artifact info gauge=%v", got)
	}
}

func TestPredictInputErrors(t *testing.T) {
	pub := NewMemoryPublisher()
	m, fs := newFileManager(t, func(c *Config) { c.Publisher = pub })
	save(t, fs, fitted(t, 0))
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	before := testutil.ToFloat64(predictionsTotal.WithLabelValues("unknown_category"))
	r := probe()
	r[predictor.FieldMake] = "HONDA"
	_, err := m.Predict(context.Background(), r)
	if !predictor.IsUnknownCategory(err) {
		t.Fatalf("want unknown category, got %v", err)
	}
	if StatusCode(err) != http.StatusUnprocessableEntity || Outcome(err) != "unknown_category" {
		t.Fatalf("status=%d outcome=%s", StatusCode(err), Outcome(err))
	}
	if got := testutil.ToFloat64(predictionsTotal.WithLabelValues("unknown_category")); got != before+1 {
		t.Fatalf("counter=%v want %v", got, before+1)
	}

	r = probe()
	r[predictor.FieldEngineSize] = "big"
	if _, err := m.Predict(context.Background(), r); !predictor.IsInvalidNumeric(err) || StatusCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("want invalid numeric, got %v", err)
	}

	r = probe()
	delete(r, predictor.FieldFuelType)
	if _, err := m.Predict(context.Background(), r); !predictor.IsMissingField(err) || StatusCode(err) != http.StatusBadRequest {
		t.Fatalf("want missing field, got %v", err)
	}

	if st := m.Status(); st.PredictionErrors != 3 || st.PredictionsTotal != 0 {
		t.Fatalf("status=%+v", st)
	}
	var failed []Event
	for _, e := range pub.Events() {
		if e.Name == EventPredictionFailed {
			failed = append(failed, e)
		}
	}
	if len(failed) != 3 {
		t.Fatalf("prediction_failed events=%d", len(failed))
	}
	if failed[0].Fields["field"] != string(predictor.FieldMake) || failed[0].Fields["value"] != "HONDA" {
		t.Fatalf("event fields=%v", failed[0].Fields)
	}
	for _, e := range failed {
		if e.Fields["input"] != true {
			t.Fatalf("input failure not flagged: %v", e.Fields)
		}
	}
}

func TestPredictNotReadyIsNotInputFailure(t *testing.T) {
	pub := NewMemoryPublisher()
	m, _ := newFileManager(t, func(c *Config) { c.Publisher = pub })
	if _, err := m.Predict(context.Background(), probe()); !IsNotReady(err) {
		t.Fatalf("want not ready, got %v", err)
	}
	evts := pub.Events()
	if len(evts) != 1 || evts[0].Name != EventPredictionFailed || evts[0].Fields["input"] != false {
		t.Fatalf("events=%+v", evts)
	}
}

func TestReloadSwapsAndKeepsOldOnFailure(t *testing.T) {
	pub := NewMemoryPublisher()
	m, fs := newFileManager(t, func(c *Config) { c.Publisher = pub })
	a1, a2 := fitted(t, 0), fitted(t, 10)
	save(t, fs, a1)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	save(t, fs, a2)
	if err := m.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	p, err := m.Predict(context.Background(), probe())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if p.Version != a2.Meta.Version || p.Value != expected(t, a2, probe()) {
		t.Fatalf("after reload: %+v", p)
	}

	// point CURRENT at a version that does not exist
	if err := os.WriteFile(filepath.Join(fs.Dir(), artifacts.CurrentFile), []byte("missing\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Reload(context.Background()); !artifacts.IsArtifactLoad(err) {
		t.Fatalf("want ArtifactLoadError, got %v", err)
	}
	p, err = m.Predict(context.Background(), probe())
	if err != nil || p.Version != a2.Meta.Version {
		t.Fatalf("old set should keep serving: %+v %v", p, err)
	}
	st := m.Status()
	if st.State != "ready" || st.ReloadFailures != 1 || st.LastError == "" || st.LoadsTotal != 2 {
		t.Fatalf("status=%+v", st)
	}
	names := pub.Names()
	if names[len(names)-1] != EventReloadFailed {
		t.Fatalf("events=%v", names)
	}
}

func TestReloadSameVersionIsNoop(t *testing.T) {
	m, fs := newFileManager(t, nil)
	save(t, fs, fitted(t, 0))
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if st := m.Status(); st.LoadsTotal != 1 {
		t.Fatalf("loads=%d", st.LoadsTotal)
	}
}

func TestPredictionCacheIsVersioned(t *testing.T) {
	m, fs := newFileManager(t, func(c *Config) { c.CacheSize = 8 })
	a1, a2 := fitted(t, 0), fitted(t, 25)
	save(t, fs, a1)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	first, err := m.Predict(context.Background(), probe())
	if err != nil || first.Cached {
		t.Fatalf("first=%+v err=%v", first, err)
	}
	second, err := m.Predict(context.Background(), probe())
	if err != nil || !second.Cached || second.Value != first.Value {
		t.Fatalf("second=%+v err=%v", second, err)
	}
	if m.CacheLen() != 1 {
		t.Fatalf("cache len=%d", m.CacheLen())
	}

	save(t, fs, a2)
	if err := m.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	third, err := m.Predict(context.Background(), probe())
	if err != nil || third.Cached || third.Version != a2.Meta.Version {
		t.Fatalf("third=%+v err=%v", third, err)
	}
	if third.Value != expected(t, a2, probe()) {
		t.Fatalf("stale prediction after swap: %v", third.Value)
	}
}

func TestLabels(t *testing.T) {
	m, fs := newFileManager(t, nil)
	a := fitted(t, 0)
	save(t, fs, a)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	all, version, err := m.Labels()
	if err != nil || version != a.Meta.Version {
		t.Fatalf("Labels: %v %q", err, version)
	}
	if len(all) != 5 {
		t.Fatalf("fields=%d", len(all))
	}
	makes := all[predictor.FieldMake]
	if len(makes) != 3 || makes[0] != "ACURA" || makes[1] != "FORD" || makes[2] != "TOYOTA" {
		t.Fatalf("makes=%v", makes)
	}
	fuels, _, err := m.LabelsFor(predictor.FieldFuelType)
	if err != nil || len(fuels) != 2 || fuels[0] != "X" || fuels[1] != "Z" {
		t.Fatalf("fuel types=%v err=%v", fuels, err)
	}
	if _, _, err := m.LabelsFor(predictor.FieldEngineSize); StatusCode(err) != http.StatusNotFound {
		t.Fatalf("numeric field labels: %v", err)
	}
	if _, _, err := m.LabelsFor("Colour"); StatusCode(err) != http.StatusNotFound {
		t.Fatalf("unknown field labels: %v", err)
	}
}

func TestConcurrentPredictDuringReload(t *testing.T) {
	m, fs := newFileManager(t, nil)
	a1, a2 := fitted(t, 0), fitted(t, 40)
	want := map[string]float64{
		a1.Meta.Version: expected(t, a1, probe()),
		a2.Meta.Version: expected(t, a2, probe()),
	}
	save(t, fs, a1)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				p, err := m.Predict(context.Background(), probe())
				if err != nil {
					errs <- err.Error()
					return
				}
				if w, ok := want[p.Version]; !ok || w != p.Value {
					errs <- "mixed artifact set: " + p.Version
					return
				}
			}
		}()
	}
	save(t, fs, a2)
	if err := m.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestBoltBackedManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")
	bs, err := artifacts.OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	m, err := New(Config{Store: bs, StoreName: "bolt:" + path, WatchPath: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer m.Close()
	a := fitted(t, 0)
	save(t, bs, a)
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	p, err := m.Predict(context.Background(), probe())
	if err != nil || p.Value != expected(t, a, probe()) {
		t.Fatalf("predict=%+v err=%v", p, err)
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := LogPublisher{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	p.Publish(Event{Name: EventReloadFailed, Version: "v1", Fields: map[string]any{"error": "boom"}})
	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"event":"reload_failed"`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}

	levels := map[bool]string{true: `"level":"debug"`, false: `"level":"error"`}
	for input, want := range levels {
		buf.Reset()
		p.Publish(Event{Name: EventPredictionFailed, Fields: map[string]any{"input": input}})
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("input=%v: want %s in %s", input, want, buf.String())
		}
	}
}
