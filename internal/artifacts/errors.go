package artifacts

import (
	"errors"
	"fmt"
)

// Artifact kinds named in load errors.
const (
	KindEncoding = "encoding"
	KindScaler   = "scaler"
	KindModel    = "model"
	KindMeta     = "meta"
	KindSet      = "set"
)

// ErrNoArtifacts means nothing has been saved to the store yet.
var ErrNoArtifacts = errors.New("no artifacts have been published")

// ArtifactLoadError reports a missing or corrupt artifact.
type ArtifactLoadError struct {
	Kind   string
	Source string
	Err    error
}

func (e *ArtifactLoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load %s artifact: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s artifact from %s: %v", e.Kind, e.Source, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

// IsArtifactLoad reports whether err is an *ArtifactLoadError.
func IsArtifactLoad(err error) bool {
	var e *ArtifactLoadError
	return errors.As(err, &e)
}
