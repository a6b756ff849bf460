package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/intentd/internal/db"
	"github.com/kailas-cloud/intentd/internal/domain"
)

// kvstore is the consumer interface for KV-backed artifact storage (ISP).
type kvstore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// KVStore persists the bundle under three keys in a shared key-value store.
type KVStore struct {
	kv     kvstore
	prefix string
}

// NewKVStore creates a KV-backed artifact store. Keys are prefix + artifact
// name, e.g. "intentd:artifact:model".
func NewKVStore(kv kvstore, prefix string) *KVStore {
	return &KVStore{kv: kv, prefix: prefix}
}

// Save writes the bundle blobs.
func (s *KVStore) Save(ctx context.Context, blobs map[string][]byte) error {
	for _, name := range bundleNames {
		if err := s.kv.Set(ctx, s.prefix+name, blobs[name]); err != nil {
			return fmt.Errorf("store %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the bundle blobs. A missing key maps to ErrArtifactNotFound.
func (s *KVStore) Load(ctx context.Context) (map[string][]byte, error) {
	blobs := make(map[string][]byte, len(bundleNames))
	for _, name := range bundleNames {
		data, err := s.kv.Get(ctx, s.prefix+name)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				return nil, fmt.Errorf("%w: %s%s", domain.ErrArtifactNotFound, s.prefix, name)
			}
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		blobs[name] = data
	}
	return blobs, nil
}
