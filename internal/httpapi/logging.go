package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"co2d/internal/predictor"
)

// zlog is the structured logger used by the HTTP layer. Disabled until
// SetLogger is called.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l.With().Str("component", "http").Logger() }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel applies when a request carries no override.
var defaultLogLevel = LevelInfo

// SetDefaultLogLevel sets the per-request default ("off", "error", "info",
// "debug").
func SetDefaultLogLevel(s string) { defaultLogLevel = parseLevel(s) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

func withRequestID(e *zerolog.Event, r *http.Request) *zerolog.Event {
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		e = e.Str("request_id", rid)
	}
	return e
}

func logPredictStart(r *http.Request, lvl LogLevel, rec predictor.Record) {
	if lvl < LevelInfo {
		return
	}
	e := withRequestID(zlog.Info(), r).Str("path", r.URL.Path)
	if lvl >= LevelDebug {
		d := zerolog.Dict()
		for f, v := range rec {
			d = d.Str(WireName(f), v)
		}
		e = e.Dict("input", d)
	}
	e.Msg("predict start")
}

func logPredictEnd(r *http.Request, lvl LogLevel, status int, start time.Time, version string, err error) {
	if lvl == LevelOff || (lvl == LevelError && err == nil) {
		return
	}
	e := zlog.Info()
	if err != nil && status >= http.StatusInternalServerError {
		e = zlog.Error()
	}
	e = withRequestID(e, r).Int("status", status).Dur("dur", time.Since(start))
	if version != "" {
		e = e.Str("version", version)
	}
	if err != nil {
		e = e.Err(err)
	}
	e.Msg("predict end")
}
