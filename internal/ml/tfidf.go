// Package ml implements the fitted halves of the classification pipeline:
// a TF-IDF vectorizer and a multinomial Naive Bayes classifier, both
// expressed as plain numeric tables so they serialize without surprises.
package ml

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrEmptyVocabulary signals a fit over a corpus with no tokens at all.
var ErrEmptyVocabulary = errors.New("empty vocabulary: corpus has no tokens")

// Vectorizer is a fitted mapping from normalized text to an L2-normalized
// TF-IDF feature vector. Immutable after fitting.
type Vectorizer struct {
	terms []string       // column index -> token, sorted
	vocab map[string]int // token -> column index
	idf   []float64
}

// VectorizerState is the serializable form of a fitted Vectorizer:
// the vocabulary and its IDF weights as plain tables.
type VectorizerState struct {
	Terms []string  `json:"terms"`
	IDF   []float64 `json:"idf"`
}

// FitVectorizer learns a vocabulary and IDF weights from a corpus of
// normalized documents. Every distinct token becomes a feature; IDF uses
// standard smoothing: ln((1+n)/(1+df)) + 1.
func FitVectorizer(corpus []string) (*Vectorizer, error) {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range strings.Fields(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for tok := range df {
		terms = append(terms, tok)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		terms: terms,
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, tok := range terms {
		v.vocab[tok] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}
	return v, nil
}

// VectorizerFromState reconstructs a fitted Vectorizer from persisted tables.
func VectorizerFromState(s VectorizerState) (*Vectorizer, error) {
	if len(s.Terms) != len(s.IDF) {
		return nil, fmt.Errorf("vectorizer state: %d terms but %d idf weights", len(s.Terms), len(s.IDF))
	}
	if len(s.Terms) == 0 {
		return nil, ErrEmptyVocabulary
	}
	v := &Vectorizer{
		terms: s.Terms,
		vocab: make(map[string]int, len(s.Terms)),
		idf:   s.IDF,
	}
	for i, tok := range s.Terms {
		v.vocab[tok] = i
	}
	return v, nil
}

// State returns the serializable tables of the fitted vectorizer.
func (v *Vectorizer) State() VectorizerState {
	return VectorizerState{Terms: v.terms, IDF: v.idf}
}

// NumFeatures returns the vocabulary size.
func (v *Vectorizer) NumFeatures() int { return len(v.terms) }

// Transform maps a normalized document to its TF-IDF vector. Tokens outside
// the fitted vocabulary contribute nothing; empty input yields a zero vector.
func (v *Vectorizer) Transform(doc string) []float64 {
	x := make([]float64, len(v.terms))
	for _, tok := range strings.Fields(doc) {
		if i, ok := v.vocab[tok]; ok {
			x[i]++
		}
	}

	var norm float64
	for i := range x {
		if x[i] > 0 {
			x[i] *= v.idf[i]
			norm += x[i] * x[i]
		}
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range x {
			x[i] /= norm
		}
	}
	return x
}

// TransformAll maps a corpus to its feature matrix.
func (v *Vectorizer) TransformAll(corpus []string) [][]float64 {
	X := make([][]float64, len(corpus))
	for i, doc := range corpus {
		X[i] = v.Transform(doc)
	}
	return X
}
