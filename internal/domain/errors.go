package domain

import "errors"

var (
	// ErrMissingMessage signals a chat request without a message field.
	ErrMissingMessage = errors.New("missing required field: message")
	// ErrEmptyMessage signals a chat message that is empty after trimming.
	ErrEmptyMessage = errors.New("message cannot be empty")
	// ErrMessageTooLong signals a chat message over the configured length cap.
	ErrMessageTooLong = errors.New("message too long")

	// ErrEmptyCatalog signals a catalog with no intents.
	ErrEmptyCatalog = errors.New("intent catalog is empty")

	// ErrArtifactNotFound signals a missing persisted artifact.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrArtifactCorrupt signals an artifact that failed to decode.
	ErrArtifactCorrupt = errors.New("artifact corrupt")
	// ErrBundleMismatch signals artifacts that come from different training runs.
	ErrBundleMismatch = errors.New("artifact bundle mismatch")
)
