package e2e

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"co2d/internal/artifacts"
	"co2d/internal/client"
	"co2d/internal/dataset"
	"co2d/internal/httpapi"
	"co2d/internal/manager"
	"co2d/internal/predictor"
)

const header = "Make,Model,Vehicle Class,Engine Size(L),Cylinders,Transmission,Fuel Type,Fuel Consumption City (L/100 km),Fuel Consumption Hwy (L/100 km),Fuel Consumption Comb (L/100 km),Fuel Consumption Comb (mpg),CO2 Emissions(g/km)"

var rows = []string{
	"ACURA,ILX,COMPACT,2.0,4,AS5,Z,9.9,6.7,8.5,33,196",
	"ACURA,ILX,COMPACT,2.4,4,M6,Z,11.2,7.7,9.6,29,221",
	"ACURA,MDX 4WD,SUV - SMALL,3.5,6,AS6,Z,12.7,9.1,11.1,25,255",
	"ACURA,RDX AWD,SUV - SMALL,3.5,6,AS6,Z,12.1,8.7,10.6,27,244",
	"BMW,X5 XDRIVE35I,SUV - STANDARD,3.0,6,A8,Z,12.6,9.1,11.0,26,253",
	"FORD,F-150,PICKUP TRUCK - STANDARD,3.5,6,AS6,X,14.5,10.8,12.8,22,301",
	"FORD,FOCUS,COMPACT,2.0,4,AM6,X,8.4,6.4,7.5,38,175",
	"FORD,MUSTANG,SUBCOMPACT,5.0,8,M6,Z,15.3,9.9,12.9,22,297",
	"TOYOTA,COROLLA,COMPACT,1.8,4,AV,X,7.6,6.1,6.9,41,162",
	"TOYOTA,TUNDRA,PICKUP TRUCK - STANDARD,5.7,8,AS6,X,18.1,13.7,16.1,18,370",
	"TOYOTA,CAMRY,MID-SIZE,2.5,4,AS8,X,8.1,5.8,7.1,40,166",
	"TOYOTA,PRIUS,MID-SIZE,1.8,4,AV,E,4.4,4.7,4.5,63,106",
}

// writeDataset writes rows as a CSV in the original column layout and
// returns its path. shift is added to every target.
func writeDataset(t *testing.T, shift int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, r := range rows {
		i := strings.LastIndexByte(r, ',')
		var target int
		for _, c := range r[i+1:] {
			target = target*10 + int(c-'0')
		}
		b.WriteString(r[:i+1])
		b.WriteString(itoa(target + shift))
		b.WriteByte('\n')
	}
	p := filepath.Join(t.TempDir(), "fuel.csv")
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// fitAndPublish runs the offline fit path into s.
func fitAndPublish(t *testing.T, s artifacts.Store, csvPath string) *predictor.Artifacts {
	t.Helper()
	ts, err := dataset.Load(csvPath, predictor.DefaultSchema)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	a, err := predictor.FitAll(predictor.DefaultSchema, ts)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if err := s.Save(context.Background(), a); err != nil {
		t.Fatalf("save: %v", err)
	}
	return a
}

// newServer serves the store through a freshly loaded manager and returns a
// client for it.
func newServer(t *testing.T, s artifacts.Store, watchPath string) (*client.Client, *manager.Manager) {
	t.Helper()
	mgr, err := manager.New(manager.Config{Store: s, WatchPath: watchPath, CacheSize: 32, WatchDebounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	if err := mgr.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	return c, mgr
}

func vehicle() predictor.Record {
	return predictor.Record{
		predictor.FieldMake:               "TOYOTA",
		predictor.FieldModel:              "CAMRY",
		predictor.FieldVehicleClass:       "MID-SIZE",
		predictor.FieldEngineSize:         "2.5",
		predictor.FieldTransmission:       "AS8",
		predictor.FieldFuelType:           "X",
		predictor.FieldFuelConsumptionHwy: "5.8",
	}
}
