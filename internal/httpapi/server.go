package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"co2d/internal/manager"
	"co2d/internal/predictor"
	"co2d/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, r predictor.Record) (manager.Prediction, error)
	Labels() (map[predictor.Field][]string, string, error)
	LabelsFor(field predictor.Field) ([]string, string, error)
	Schema() *predictor.Schema
	Status() types.StatusResponse
	Ready() bool
}

const rootMessage = "CO2 Emissions Prediction API"

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.RootResponse{Message: rootMessage})
	})

	r.Post("/predict", predictHandler(svc))

	r.Get("/labels", func(w http.ResponseWriter, r *http.Request) {
		labels, version, err := svc.Labels()
		if err != nil {
			writeError(w, err)
			return
		}
		resp := types.LabelsResponse{Labels: make(map[string][]string, len(labels)), Version: version}
		for f, l := range labels {
			resp.Labels[WireName(f)] = l
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/labels/{field}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "field")
		f, ok := FieldFromName(svc.Schema(), name)
		if !ok {
			writeJSONError(w, http.StatusNotFound, "unknown field: "+name, "")
			return
		}
		labels, version, err := svc.LabelsFor(f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.FieldLabelsResponse{Field: WireName(f), Labels: labels, Version: version})
	})

	r.Get("/schema", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, schemaResponse(svc.Schema()))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func predictHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Content-Type check
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "")
			return
		}
		// Limit body size (configurable, default 1MiB)
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// If exceeded size, MaxBytesReader may cause an error; still return 400 to avoid size leak details
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body", "")
			return
		}
		rec := RecordFromRequest(&req)

		start := time.Now()
		lvl := requestLogLevel(r)
		logPredictStart(r, lvl, rec)
		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		p, err := svc.Predict(ctx, rec)
		if err != nil {
			status := writeError(w, err)
			logPredictEnd(r, lvl, status, start, "", err)
			return
		}
		writeJSON(w, http.StatusOK, types.PredictResponse{Prediction: p.Value, Version: p.Version})
		logPredictEnd(r, lvl, http.StatusOK, start, p.Version, nil)
	}
}

func schemaResponse(s *predictor.Schema) types.SchemaResponse {
	cols := s.Columns()
	resp := types.SchemaResponse{Columns: make([]types.ColumnInfo, len(cols))}
	for i, c := range cols {
		resp.Columns[i] = types.ColumnInfo{
			Index: i,
			Name:  string(c.Field),
			Wire:  WireName(c.Field),
			Kind:  c.Kind.String(),
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
