package intentd

import "github.com/kailas-cloud/intentd/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMissingMessage   = domain.ErrMissingMessage
	ErrEmptyMessage     = domain.ErrEmptyMessage
	ErrMessageTooLong   = domain.ErrMessageTooLong
	ErrArtifactNotFound = domain.ErrArtifactNotFound
	ErrArtifactCorrupt  = domain.ErrArtifactCorrupt
	ErrBundleMismatch   = domain.ErrBundleMismatch
)
