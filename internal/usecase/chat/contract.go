package chat

// Vectorizer maps a normalized message to the model's feature space.
type Vectorizer interface {
	Transform(doc string) []float64
}

// Classifier predicts a probability distribution over intent tags.
type Classifier interface {
	Classes() []string
	Proba(x []float64) []float64
}
