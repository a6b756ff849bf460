package train

import "context"

// ArtifactStore defines the persistence contract for trained bundles.
type ArtifactStore interface {
	Save(ctx context.Context, blobs map[string][]byte) error
}
