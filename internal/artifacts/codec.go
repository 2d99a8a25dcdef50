package artifacts

import (
	"encoding/json"
	"errors"
	"fmt"

	"co2d/internal/predictor"
)

// document names, used as file names and bolt keys
const (
	docEncoding = "encoding.json"
	docScaler   = "scaler.json"
	docModel    = "model.json"
	docMeta     = "meta.json"
)

func encodeSet(a *predictor.Artifacts) (map[string][]byte, error) {
	if a == nil || a.Encoding == nil || a.Scaler == nil || a.Model == nil {
		return nil, errors.New("artifact set is incomplete")
	}
	if a.Meta.Version == "" {
		return nil, errors.New("artifact set has no version")
	}
	docs := map[string]any{
		docEncoding: a.Encoding,
		docScaler:   a.Scaler,
		docModel:    a.Model,
		docMeta:     a.Meta,
	}
	out := make(map[string][]byte, len(docs))
	for name, v := range docs {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out[name] = b
	}
	return out, nil
}

func decodeEncoding(b []byte, source string) (*predictor.EncodingTable, error) {
	var t predictor.EncodingTable
	if err := decodeDoc(b, &t); err != nil {
		return nil, &ArtifactLoadError{Kind: KindEncoding, Source: source, Err: err}
	}
	return &t, nil
}

func decodeScaler(b []byte, source string) (*predictor.Scaler, error) {
	var s predictor.Scaler
	if err := decodeDoc(b, &s); err != nil {
		return nil, &ArtifactLoadError{Kind: KindScaler, Source: source, Err: err}
	}
	return &s, nil
}

func decodeModel(b []byte, source string) (*predictor.LinearModel, error) {
	var m predictor.LinearModel
	if err := decodeDoc(b, &m); err != nil {
		return nil, &ArtifactLoadError{Kind: KindModel, Source: source, Err: err}
	}
	return &m, nil
}

func decodeMeta(b []byte, source string) (predictor.Meta, error) {
	var m predictor.Meta
	if err := decodeDoc(b, &m); err != nil {
		return m, &ArtifactLoadError{Kind: KindMeta, Source: source, Err: err}
	}
	return m, nil
}

func decodeDoc(b []byte, v any) error {
	if len(b) == 0 {
		return errors.New("empty document")
	}
	return json.Unmarshal(b, v)
}
