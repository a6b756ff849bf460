// Package artifact provides storage backends for the persisted model bundle:
// a model directory on disk, and a Redis keyspace so one training run can
// publish artifacts to many service replicas.
package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/intentd/internal/artifact"
	"github.com/kailas-cloud/intentd/internal/domain"
)

var bundleNames = []string{artifact.NameVectorizer, artifact.NameModel, artifact.NameIntents}

// FileStore persists the bundle as three JSON files under a model directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed artifact store.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Save writes the bundle blobs, creating the directory if needed.
func (s *FileStore) Save(_ context.Context, blobs map[string][]byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	for _, name := range bundleNames {
		if err := os.WriteFile(s.path(name), blobs[name], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the bundle blobs. A missing file maps to ErrArtifactNotFound.
func (s *FileStore) Load(_ context.Context) (map[string][]byte, error) {
	blobs := make(map[string][]byte, len(bundleNames))
	for _, name := range bundleNames {
		data, err := os.ReadFile(s.path(name))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, s.path(name))
			}
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		blobs[name] = data
	}
	return blobs, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
