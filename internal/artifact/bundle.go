// Package artifact defines the persisted model bundle: three versioned JSON
// blobs (vectorizer, model, intents) produced by one training run. Each blob
// carries the bundle fingerprint so a service never starts on artifacts from
// different runs.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/intentd/internal/domain"
	"github.com/kailas-cloud/intentd/internal/ml"
)

// SchemaVersion is the serialization format version of the envelopes.
const SchemaVersion = 1

// Artifact names within a bundle. Stores use them as file names or key suffixes.
const (
	NameVectorizer = "vectorizer"
	NameModel      = "model"
	NameIntents    = "intents"
)

// Envelope wraps one artifact payload with its format version and the
// fingerprint of the training run that produced it.
type Envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Fingerprint   string          `json:"fingerprint"`
	Payload       json.RawMessage `json:"payload"`
}

// Bundle is one atomic model version: the fitted vectorizer and classifier
// plus the catalog they were trained from.
type Bundle struct {
	Vectorizer  *ml.Vectorizer
	Model       *ml.NaiveBayes
	Catalog     domain.Catalog
	Fingerprint string
}

// New assembles a bundle from freshly fitted components and stamps it with
// the training-run fingerprint.
func New(vec *ml.Vectorizer, model *ml.NaiveBayes, catalog domain.Catalog) *Bundle {
	return &Bundle{
		Vectorizer:  vec,
		Model:       model,
		Catalog:     catalog,
		Fingerprint: fingerprint(model.Classes(), vec.NumFeatures(), catalog.Tags()),
	}
}

// fingerprint hashes the identifying shape of a training run: its label
// space, vocabulary size, and catalog tag set.
func fingerprint(classes []string, vocabSize int, tags []string) string {
	sortedTags := append([]string(nil), tags...)
	sort.Strings(sortedTags)

	h := sha256.New()
	fmt.Fprintf(h, "v%d\n%s\n%d\n%s\n",
		SchemaVersion,
		strings.Join(classes, ","),
		vocabSize,
		strings.Join(sortedTags, ","),
	)
	return hex.EncodeToString(h.Sum(nil))
}

// Encode serializes the bundle into its three named envelope blobs.
func (b *Bundle) Encode() (map[string][]byte, error) {
	payloads := map[string]any{
		NameVectorizer: b.Vectorizer.State(),
		NameModel:      b.Model.State(),
		NameIntents:    b.Catalog,
	}

	blobs := make(map[string][]byte, len(payloads))
	for name, payload := range payloads {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", name, err)
		}
		blob, err := json.MarshalIndent(Envelope{
			SchemaVersion: SchemaVersion,
			Fingerprint:   b.Fingerprint,
			Payload:       raw,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s envelope: %w", name, err)
		}
		blobs[name] = blob
	}
	return blobs, nil
}

// Decode reconstructs a bundle from its three envelope blobs and verifies
// artifact-triad consistency: all envelopes must carry the same schema
// version and fingerprint, and every class the model can predict must exist
// in the catalog.
func Decode(blobs map[string][]byte) (*Bundle, error) {
	envs := make(map[string]Envelope, 3)
	for _, name := range []string{NameVectorizer, NameModel, NameIntents} {
		blob, ok := blobs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing", domain.ErrArtifactNotFound, name)
		}
		var env Envelope
		if err := json.Unmarshal(blob, &env); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrArtifactCorrupt, name, err)
		}
		if env.SchemaVersion != SchemaVersion {
			return nil, fmt.Errorf("%w: %s has schema version %d, want %d",
				domain.ErrArtifactCorrupt, name, env.SchemaVersion, SchemaVersion)
		}
		envs[name] = env
	}

	fp := envs[NameVectorizer].Fingerprint
	for name, env := range envs {
		if env.Fingerprint != fp {
			return nil, fmt.Errorf("%w: %s fingerprint differs", domain.ErrBundleMismatch, name)
		}
	}

	var vecState ml.VectorizerState
	if err := json.Unmarshal(envs[NameVectorizer].Payload, &vecState); err != nil {
		return nil, fmt.Errorf("%w: vectorizer payload: %v", domain.ErrArtifactCorrupt, err)
	}
	vec, err := ml.VectorizerFromState(vecState)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactCorrupt, err)
	}

	var modelState ml.NaiveBayesState
	if err := json.Unmarshal(envs[NameModel].Payload, &modelState); err != nil {
		return nil, fmt.Errorf("%w: model payload: %v", domain.ErrArtifactCorrupt, err)
	}
	model, err := ml.NaiveBayesFromState(modelState)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactCorrupt, err)
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(envs[NameIntents].Payload, &catalog); err != nil {
		return nil, fmt.Errorf("%w: intents payload: %v", domain.ErrArtifactCorrupt, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactCorrupt, err)
	}

	known := make(map[string]bool, len(catalog.Intents))
	for _, tag := range catalog.Tags() {
		known[tag] = true
	}
	for _, class := range model.Classes() {
		if !known[class] {
			return nil, fmt.Errorf("%w: model predicts %q which is absent from the catalog",
				domain.ErrBundleMismatch, class)
		}
	}

	return &Bundle{
		Vectorizer:  vec,
		Model:       model,
		Catalog:     catalog,
		Fingerprint: fp,
	}, nil
}
