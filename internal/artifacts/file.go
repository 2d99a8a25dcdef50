package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"co2d/internal/common/fsutil"
	"co2d/internal/predictor"
)

// CurrentFile names the pointer file holding the published version.
const CurrentFile = "CURRENT"

const defaultKeep = 3

// FileStore keeps each artifact set in its own version directory:
//
//	<dir>/<version>/{encoding,scaler,model,meta}.json
//	<dir>/CURRENT
type FileStore struct {
	dir  string
	keep int
}

// NewFileStore opens (and creates) a file store rooted at dir.
func NewFileStore(dir string, keep int) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("artifact directory is required")
	}
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	if keep <= 0 {
		keep = defaultKeep
	}
	return &FileStore{dir: abs, keep: keep}, nil
}

// Dir is the absolute root directory of the store.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Close() error { return nil }

// Current returns the published version.
func (s *FileStore) Current() (string, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, CurrentFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoArtifacts
		}
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if v == "" || strings.ContainsAny(v, `/\`) || v == "." || v == ".." {
		return "", fmt.Errorf("invalid %s pointer %q", CurrentFile, v)
	}
	return v, nil
}

// Versions lists the version directories present in the store.
func (s *FileStore) Versions() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// Load reads every artifact from the single version CURRENT points at.
func (s *FileStore) Load(ctx context.Context) (*predictor.Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, err := s.Current()
	if err != nil {
		return nil, &ArtifactLoadError{Kind: KindSet, Source: s.dir, Err: err}
	}
	docs := make(map[string][]byte, 4)
	for _, name := range []string{docEncoding, docScaler, docModel, docMeta} {
		b, err := os.ReadFile(filepath.Join(s.dir, v, name))
		if err != nil {
			return nil, &ArtifactLoadError{Kind: kindOf(name), Source: filepath.Join(s.dir, v, name), Err: err}
		}
		docs[name] = b
	}
	a := &predictor.Artifacts{}
	if a.Encoding, err = decodeEncoding(docs[docEncoding], v); err != nil {
		return nil, err
	}
	if a.Scaler, err = decodeScaler(docs[docScaler], v); err != nil {
		return nil, err
	}
	if a.Model, err = decodeModel(docs[docModel], v); err != nil {
		return nil, err
	}
	if a.Meta, err = decodeMeta(docs[docMeta], v); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *FileStore) LoadEncodingTable(ctx context.Context) (*predictor.EncodingTable, error) {
	b, src, err := s.readCurrent(ctx, docEncoding)
	if err != nil {
		return nil, err
	}
	return decodeEncoding(b, src)
}

func (s *FileStore) LoadScaler(ctx context.Context) (*predictor.Scaler, error) {
	b, src, err := s.readCurrent(ctx, docScaler)
	if err != nil {
		return nil, err
	}
	return decodeScaler(b, src)
}

func (s *FileStore) LoadModel(ctx context.Context) (*predictor.LinearModel, error) {
	b, src, err := s.readCurrent(ctx, docModel)
	if err != nil {
		return nil, err
	}
	return decodeModel(b, src)
}

// Save writes a into a staging directory, renames it to its version and only
// then repoints CURRENT. Older versions beyond the keep limit are pruned.
func (s *FileStore) Save(ctx context.Context, a *predictor.Artifacts) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docs, err := encodeSet(a)
	if err != nil {
		return err
	}
	version := a.Meta.Version
	if cur, err := s.Current(); err == nil && cur == version {
		// identical fit: the published directory already holds the same
		// artifacts and only the metadata timestamp would change
		return nil
	}
	staging, err := os.MkdirTemp(s.dir, ".staging-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)
	for name, b := range docs {
		if err := fsutil.WriteFileAtomic(filepath.Join(staging, name), b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := os.Chmod(staging, 0o755); err != nil {
		return fmt.Errorf("chmod staging dir: %w", err)
	}
	final := filepath.Join(s.dir, version)
	if err := os.RemoveAll(final); err != nil {
		return fmt.Errorf("replace version dir: %w", err)
	}
	if err := os.Rename(staging, final); err != nil {
		return fmt.Errorf("publish version dir: %w", err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(s.dir, CurrentFile), []byte(version+"\n"), 0o644); err != nil {
		return fmt.Errorf("update %s: %w", CurrentFile, err)
	}
	return s.prune(version)
}

// prune removes the oldest versions so at most keep remain, never touching
// the published one.
func (s *FileStore) prune(current string) error {
	versions, err := s.Versions()
	if err != nil {
		return err
	}
	type aged struct {
		name string
		mod  int64
	}
	var old []aged
	for _, v := range versions {
		if v == current {
			continue
		}
		fi, err := os.Stat(filepath.Join(s.dir, v))
		if err != nil {
			continue
		}
		old = append(old, aged{v, fi.ModTime().UnixNano()})
	}
	excess := len(old) - (s.keep - 1)
	if excess <= 0 {
		return nil
	}
	sort.Slice(old, func(i, j int) bool { return old[i].mod < old[j].mod })
	for _, o := range old[:excess] {
		if err := os.RemoveAll(filepath.Join(s.dir, o.name)); err != nil {
			return fmt.Errorf("prune %s: %w", o.name, err)
		}
	}
	return nil
}

func (s *FileStore) readCurrent(ctx context.Context, name string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	v, err := s.Current()
	if err != nil {
		return nil, "", &ArtifactLoadError{Kind: kindOf(name), Source: s.dir, Err: err}
	}
	p := filepath.Join(s.dir, v, name)
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, "", &ArtifactLoadError{Kind: kindOf(name), Source: p, Err: err}
	}
	return b, v, nil
}

func kindOf(doc string) string {
	switch doc {
	case docEncoding:
		return KindEncoding
	case docScaler:
		return KindScaler
	case docModel:
		return KindModel
	default:
		return KindMeta
	}
}
