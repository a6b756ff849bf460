// Package chat answers one user message with an intent and a canned response.
package chat

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/intentd/internal/domain"
	"github.com/kailas-cloud/intentd/internal/textnorm"
)

// Classification policy defaults. Threshold and length cap are policy
// constants, not learned values.
const (
	DefaultConfidenceThreshold = 0.15
	DefaultMaxMessageLen       = 500

	// UnknownIntent is reported when the classifier is not confident enough.
	UnknownIntent = "unknown"

	DefaultLowConfidenceResponse = "I'm not sure I understand. Could you rephrase that? " +
		"You can also call TD at 1-866-222-3456 for assistance."
	DefaultNoAnswerResponse = "I'm sorry, I couldn't find an answer. Please call TD at 1-866-222-3456."
)

// Outcome labels how a classification was resolved.
type Outcome string

const (
	// OutcomeMatched means the predicted intent answered the message.
	OutcomeMatched Outcome = "matched"
	// OutcomeLowConfidence means the prediction fell below the threshold.
	OutcomeLowConfidence Outcome = "low_confidence"
	// OutcomeCatalogMismatch means the predicted tag is absent from the
	// catalog. This only happens when loaded artifacts disagree.
	OutcomeCatalogMismatch Outcome = "catalog_mismatch"
)

// Result is one answered message.
type Result struct {
	Message    string
	Intent     string
	Confidence float64
	Response   string
	Outcome    Outcome
}

// Service classifies messages against the loaded model and catalog.
// All state is established at construction and read-only afterwards, so one
// Service safely serves concurrent requests.
type Service struct {
	vec       Vectorizer
	model     Classifier
	catalog   domain.Catalog
	logger    *zap.Logger
	threshold float64
	maxLen    int
	lowText   string
	missText  string
	pick      func(n int) int
}

// New creates a chat service with the default classification policy.
func New(vec Vectorizer, model Classifier, catalog domain.Catalog, logger *zap.Logger) *Service {
	return &Service{
		vec:       vec,
		model:     model,
		catalog:   catalog,
		logger:    logger,
		threshold: DefaultConfidenceThreshold,
		maxLen:    DefaultMaxMessageLen,
		lowText:   DefaultLowConfidenceResponse,
		missText:  DefaultNoAnswerResponse,
		pick:      rand.IntN,
	}
}

// WithPolicy overrides the confidence threshold and message length cap.
func (s *Service) WithPolicy(threshold float64, maxLen int) *Service {
	if threshold > 0 {
		s.threshold = threshold
	}
	if maxLen > 0 {
		s.maxLen = maxLen
	}
	return s
}

// WithFallbacks overrides the low-confidence and no-answer response texts.
func (s *Service) WithFallbacks(lowConfidence, noAnswer string) *Service {
	if lowConfidence != "" {
		s.lowText = lowConfidence
	}
	if noAnswer != "" {
		s.missText = noAnswer
	}
	return s
}

// WithPicker overrides the response picker (test seam). pick(n) must return
// a value in [0, n).
func (s *Service) WithPicker(pick func(n int) int) *Service {
	s.pick = pick
	return s
}

// Classify validates and answers one message. message is nil when the
// request carried no message field at all.
//
// Validation short-circuits in order: presence, emptiness after trimming,
// then the length cap. Inference never errors: out-of-vocabulary messages
// produce a zero feature vector and resolve through the confidence gate.
func (s *Service) Classify(ctx context.Context, message *string) (Result, error) {
	if message == nil {
		return Result{}, domain.ErrMissingMessage
	}
	msg := strings.TrimSpace(*message)
	if msg == "" {
		return Result{}, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(msg) > s.maxLen {
		return Result{}, fmt.Errorf("%w: maximum %d characters", domain.ErrMessageTooLong, s.maxLen)
	}

	x := s.vec.Transform(textnorm.Normalize(msg))
	probs := s.model.Proba(x)

	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	tag := s.model.Classes()[best]
	confidence := math.Round(probs[best]*10000) / 10000

	if confidence < s.threshold {
		return Result{
			Message:    msg,
			Intent:     UnknownIntent,
			Confidence: confidence,
			Response:   s.lowText,
			Outcome:    OutcomeLowConfidence,
		}, nil
	}

	intent, ok := s.catalog.Find(tag)
	if !ok {
		// Artifact-consistency bug upstream: the model predicts a tag the
		// catalog does not know. Logged louder than a low-confidence miss.
		s.logger.Warn("predicted tag missing from catalog",
			zap.String("tag", tag),
			zap.Float64("confidence", confidence),
		)
		return Result{
			Message:    msg,
			Intent:     tag,
			Confidence: confidence,
			Response:   s.missText,
			Outcome:    OutcomeCatalogMismatch,
		}, nil
	}

	return Result{
		Message:    msg,
		Intent:     tag,
		Confidence: confidence,
		Response:   intent.Responses[s.pick(len(intent.Responses))],
		Outcome:    OutcomeMatched,
	}, nil
}
