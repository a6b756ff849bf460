// Package train fits the classification pipeline over an intent catalog and
// persists the resulting artifact bundle.
package train

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/intentd/internal/artifact"
	"github.com/kailas-cloud/intentd/internal/domain"
	"github.com/kailas-cloud/intentd/internal/ml"
	"github.com/kailas-cloud/intentd/internal/textnorm"
)

// Default evaluation split parameters. The seed is fixed so reported accuracy
// is reproducible across runs of the same catalog.
const (
	DefaultTestSize = 0.2
	DefaultSeed     = 42
)

// Result reports one training run.
type Result struct {
	Bundle       *artifact.Bundle
	Accuracy     float64 // held-out accuracy; meaningless when TestSamples is 0
	TrainSamples int
	TestSamples  int
}

// Service trains the vectorizer and classifier and persists the bundle.
type Service struct {
	store    ArtifactStore
	testSize float64
	seed     int64
}

// New creates a training service.
func New(store ArtifactStore) *Service {
	return &Service{store: store, testSize: DefaultTestSize, seed: DefaultSeed}
}

// WithSplit overrides the evaluation split parameters.
func (s *Service) WithSplit(testSize float64, seed int64) *Service {
	if testSize > 0 && testSize < 1 {
		s.testSize = testSize
	}
	s.seed = seed
	return s
}

// Train flattens the catalog into (normalized pattern, tag) examples, fits
// the TF-IDF vectorizer and Naive Bayes classifier, evaluates on a held-out
// split, and persists the bundle. Accuracy is observability only: artifacts
// are saved unconditionally once fitting succeeds.
func (s *Service) Train(ctx context.Context, catalog domain.Catalog) (Result, error) {
	if err := catalog.Validate(); err != nil {
		return Result{}, fmt.Errorf("validate catalog: %w", err)
	}

	var corpus []string
	var labels []string
	for _, in := range catalog.Intents {
		for _, pattern := range in.Patterns {
			corpus = append(corpus, textnorm.Normalize(pattern))
			labels = append(labels, in.Tag)
		}
	}

	vec, err := ml.FitVectorizer(corpus)
	if err != nil {
		return Result{}, fmt.Errorf("fit vectorizer: %w", err)
	}
	X := vec.TransformAll(corpus)

	trainIdx, testIdx := ml.TrainTestSplit(len(corpus), s.testSize, s.seed)

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainX[i] = X[idx]
		trainY[i] = labels[idx]
	}

	model, err := ml.FitNaiveBayes(trainX, trainY, ml.DefaultAlpha)
	if err != nil {
		return Result{}, fmt.Errorf("fit classifier: %w", err)
	}

	var correct int
	for _, idx := range testIdx {
		if tag, _ := model.Predict(X[idx]); tag == labels[idx] {
			correct++
		}
	}
	var accuracy float64
	if len(testIdx) > 0 {
		accuracy = float64(correct) / float64(len(testIdx))
	}

	bundle := artifact.New(vec, model, catalog)
	blobs, err := bundle.Encode()
	if err != nil {
		return Result{}, fmt.Errorf("encode bundle: %w", err)
	}
	if err := s.store.Save(ctx, blobs); err != nil {
		return Result{}, fmt.Errorf("persist bundle: %w", err)
	}

	return Result{
		Bundle:       bundle,
		Accuracy:     accuracy,
		TrainSamples: len(trainIdx),
		TestSamples:  len(testIdx),
	}, nil
}
