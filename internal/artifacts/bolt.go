package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"co2d/internal/common/fsutil"
	"co2d/internal/predictor"
	"go.etcd.io/bbolt"
)

const artifactBucket = "artifacts"

// BoltStore keeps the current artifact set in a single BoltDB file. The file
// is opened per operation so that a serving process does not hold the
// exclusive lock a fitting run needs to publish.
type BoltStore struct {
	path string
}

// OpenBolt prepares a BoltDB-backed store at path, creating the file and its
// bucket if needed.
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	store := &BoltStore{path: filepath.Clean(p)}
	if err := store.ensureBuckets(); err != nil {
		return nil, err
	}
	return store, nil
}

// Path is the database file.
func (s *BoltStore) Path() string { return s.path }

func (s *BoltStore) Close() error { return nil }

func (s *BoltStore) open(readOnly bool) (*bbolt.DB, error) {
	db, err := bbolt.Open(s.path, 0o600, &bbolt.Options{Timeout: time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	return db, nil
}

// Save writes all artifacts in one transaction.
func (s *BoltStore) Save(ctx context.Context, a *predictor.Artifacts) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docs, err := encodeSet(a)
	if err != nil {
		return err
	}
	db, err := s.open(false)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(artifactBucket))
		if bucket == nil {
			return fmt.Errorf("artifact bucket is missing")
		}
		for name, b := range docs {
			if err := bucket.Put([]byte(name), b); err != nil {
				return fmt.Errorf("put %s: %w", name, err)
			}
		}
		return nil
	})
}

// Load reads all artifacts in one read transaction.
func (s *BoltStore) Load(ctx context.Context) (*predictor.Artifacts, error) {
	docs, err := s.read(ctx, docEncoding, docScaler, docModel, docMeta)
	if err != nil {
		return nil, err
	}
	a := &predictor.Artifacts{}
	if a.Encoding, err = decodeEncoding(docs[docEncoding], s.path); err != nil {
		return nil, err
	}
	if a.Scaler, err = decodeScaler(docs[docScaler], s.path); err != nil {
		return nil, err
	}
	if a.Model, err = decodeModel(docs[docModel], s.path); err != nil {
		return nil, err
	}
	if a.Meta, err = decodeMeta(docs[docMeta], s.path); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *BoltStore) LoadEncodingTable(ctx context.Context) (*predictor.EncodingTable, error) {
	docs, err := s.read(ctx, docEncoding)
	if err != nil {
		return nil, err
	}
	return decodeEncoding(docs[docEncoding], s.path)
}

func (s *BoltStore) LoadScaler(ctx context.Context) (*predictor.Scaler, error) {
	docs, err := s.read(ctx, docScaler)
	if err != nil {
		return nil, err
	}
	return decodeScaler(docs[docScaler], s.path)
}

func (s *BoltStore) LoadModel(ctx context.Context) (*predictor.LinearModel, error) {
	docs, err := s.read(ctx, docModel)
	if err != nil {
		return nil, err
	}
	return decodeModel(docs[docModel], s.path)
}

// read copies the named documents out of a single read transaction.
func (s *BoltStore) read(ctx context.Context, names ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := s.open(true)
	if err != nil {
		return nil, &ArtifactLoadError{Kind: KindSet, Source: s.path, Err: err}
	}
	defer db.Close()
	out := make(map[string][]byte, len(names))
	err = db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(artifactBucket))
		if bucket == nil {
			return &ArtifactLoadError{Kind: KindSet, Source: s.path, Err: fmt.Errorf("artifact bucket is missing")}
		}
		for _, name := range names {
			payload := bucket.Get([]byte(name))
			if payload == nil {
				return &ArtifactLoadError{Kind: kindOf(name), Source: s.path, Err: ErrNoArtifacts}
			}
			// bolt memory is only valid inside the transaction
			out[name] = append([]byte(nil), payload...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltStore) ensureBuckets() error {
	db, err := s.open(false)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(artifactBucket))
		if err != nil {
			return fmt.Errorf("create artifact bucket: %w", err)
		}
		return nil
	})
}
