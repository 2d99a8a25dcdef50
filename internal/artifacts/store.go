// Package artifacts persists and loads the artifact set produced by fitting.
//
// A set (encoding table, scaler, model, metadata) is always written as one
// unit: FileStore publishes it by renaming a CURRENT pointer after the version
// directory is complete, BoltStore writes it in a single transaction. Loaders
// therefore never observe a half-written fitting run.
package artifacts

import (
	"context"
	"fmt"
	"strings"

	"co2d/internal/predictor"
)

// Store is the artifact store used by the fitting command and the server.
type Store interface {
	// Load reads a complete, consistent artifact set.
	Load(ctx context.Context) (*predictor.Artifacts, error)
	LoadEncodingTable(ctx context.Context) (*predictor.EncodingTable, error)
	LoadScaler(ctx context.Context) (*predictor.Scaler, error)
	LoadModel(ctx context.Context) (*predictor.LinearModel, error)
	// Save persists a as the new current set, atomically.
	Save(ctx context.Context, a *predictor.Artifacts) error
	Close() error
}

// Kinds of stores accepted by Open.
const (
	KindFile = "file"
	KindBolt = "bolt"
)

// Options select and configure a store.
type Options struct {
	Kind string
	// Path is the directory of a file store or the database file of a bolt store.
	Path string
	// Keep is how many old versions a file store retains (0 = default).
	Keep int
}

// Open returns the store described by opts.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(opts.Kind) {
	case "", KindFile:
		return NewFileStore(opts.Path, opts.Keep)
	case KindBolt:
		return OpenBolt(opts.Path)
	default:
		return nil, fmt.Errorf("unsupported artifact store kind: %s", opts.Kind)
	}
}

// LoadValidated loads the current set from s and checks it against schema.
// Any failure is an *ArtifactLoadError.
func LoadValidated(ctx context.Context, s Store, schema *predictor.Schema) (*predictor.Artifacts, error) {
	a, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(schema); err != nil {
		return nil, &ArtifactLoadError{Kind: KindSet, Source: a.Meta.Version, Err: err}
	}
	return a, nil
}
