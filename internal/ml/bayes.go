package ml

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultAlpha is the Laplace smoothing constant for Naive Bayes fitting.
const DefaultAlpha = 1.0

// NaiveBayes is a fitted multinomial Naive Bayes classifier over TF-IDF
// features. Immutable after fitting.
type NaiveBayes struct {
	classes        []string // sorted
	classLogPrior  []float64
	featureLogProb [][]float64 // [class][feature]
}

// NaiveBayesState is the serializable form of a fitted classifier:
// per-class priors and per-feature log likelihoods as numeric tables.
type NaiveBayesState struct {
	Classes        []string    `json:"classes"`
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

// FitNaiveBayes trains a multinomial Naive Bayes classifier on a feature
// matrix X and labels y with Laplace smoothing alpha.
func FitNaiveBayes(X [][]float64, y []string, alpha float64) (*NaiveBayes, error) {
	if len(X) == 0 {
		return nil, errors.New("naive bayes: no training samples")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("naive bayes: %d samples but %d labels", len(X), len(y))
	}
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	numFeatures := len(X[0])
	classSet := make(map[string]bool)
	for _, label := range y {
		classSet[label] = true
	}
	classes := make([]string, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	classIdx := make(map[string]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}

	counts := make([]int, len(classes))               // samples per class
	featureSum := make([][]float64, len(classes))     // summed feature weights per class
	for i := range featureSum {
		featureSum[i] = make([]float64, numFeatures)
	}
	for i, row := range X {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("naive bayes: sample %d has %d features, want %d", i, len(row), numFeatures)
		}
		c := classIdx[y[i]]
		counts[c]++
		for f, w := range row {
			featureSum[c][f] += w
		}
	}

	nb := &NaiveBayes{
		classes:        classes,
		classLogPrior:  make([]float64, len(classes)),
		featureLogProb: make([][]float64, len(classes)),
	}
	n := float64(len(X))
	for c := range classes {
		nb.classLogPrior[c] = math.Log(float64(counts[c]) / n)

		var total float64
		for _, w := range featureSum[c] {
			total += w
		}
		denom := math.Log(total + alpha*float64(numFeatures))
		nb.featureLogProb[c] = make([]float64, numFeatures)
		for f, w := range featureSum[c] {
			nb.featureLogProb[c][f] = math.Log(w+alpha) - denom
		}
	}
	return nb, nil
}

// NaiveBayesFromState reconstructs a fitted classifier from persisted tables.
func NaiveBayesFromState(s NaiveBayesState) (*NaiveBayes, error) {
	if len(s.Classes) == 0 {
		return nil, errors.New("naive bayes state: no classes")
	}
	if len(s.Classes) != len(s.ClassLogPrior) || len(s.Classes) != len(s.FeatureLogProb) {
		return nil, fmt.Errorf("naive bayes state: inconsistent table sizes (%d classes, %d priors, %d likelihood rows)",
			len(s.Classes), len(s.ClassLogPrior), len(s.FeatureLogProb))
	}
	return &NaiveBayes{
		classes:        s.Classes,
		classLogPrior:  s.ClassLogPrior,
		featureLogProb: s.FeatureLogProb,
	}, nil
}

// State returns the serializable tables of the fitted classifier.
func (nb *NaiveBayes) State() NaiveBayesState {
	return NaiveBayesState{
		Classes:        nb.classes,
		ClassLogPrior:  nb.classLogPrior,
		FeatureLogProb: nb.featureLogProb,
	}
}

// Classes returns the label space in sorted order.
func (nb *NaiveBayes) Classes() []string { return nb.classes }

// Proba returns the probability distribution over all classes for a feature
// vector, in Classes() order. Probabilities sum to 1.
func (nb *NaiveBayes) Proba(x []float64) []float64 {
	jll := make([]float64, len(nb.classes))
	for c := range nb.classes {
		s := nb.classLogPrior[c]
		row := nb.featureLogProb[c]
		for f, w := range x {
			if w != 0 && f < len(row) {
				s += w * row[f]
			}
		}
		jll[c] = s
	}

	// Softmax via log-sum-exp for numeric stability.
	maxJLL := jll[0]
	for _, v := range jll[1:] {
		if v > maxJLL {
			maxJLL = v
		}
	}
	var sum float64
	probs := make([]float64, len(jll))
	for c, v := range jll {
		probs[c] = math.Exp(v - maxJLL)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
	return probs
}

// Predict returns the argmax class and its probability.
func (nb *NaiveBayes) Predict(x []float64) (string, float64) {
	probs := nb.Proba(x)
	best := 0
	for c := range probs {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return nb.classes[best], probs[best]
}
