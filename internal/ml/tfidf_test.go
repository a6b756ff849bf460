package ml

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const eps = 1e-9

func TestFitVectorizer_Vocabulary(t *testing.T) {
	v, err := FitVectorizer([]string{"hello world", "hello there"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"hello", "there", "world"}
	if !reflect.DeepEqual(v.State().Terms, want) {
		t.Errorf("terms: got %v, want %v", v.State().Terms, want)
	}
	if v.NumFeatures() != 3 {
		t.Errorf("features: got %d, want 3", v.NumFeatures())
	}
}

func TestFitVectorizer_IDF(t *testing.T) {
	v, err := FitVectorizer([]string{"hello world", "hello there"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := v.State()

	// "hello" appears in both docs: ln(3/3)+1 = 1.
	// "there"/"world" appear in one: ln(3/2)+1.
	wantCommon := 1.0
	wantRare := math.Log(1.5) + 1
	if math.Abs(s.IDF[0]-wantCommon) > eps {
		t.Errorf("idf(hello): got %v, want %v", s.IDF[0], wantCommon)
	}
	if math.Abs(s.IDF[1]-wantRare) > eps || math.Abs(s.IDF[2]-wantRare) > eps {
		t.Errorf("idf(rare): got %v/%v, want %v", s.IDF[1], s.IDF[2], wantRare)
	}
}

func TestFitVectorizer_EmptyCorpus(t *testing.T) {
	for _, corpus := range [][]string{nil, {""}, {"", "  "}} {
		if _, err := FitVectorizer(corpus); !errors.Is(err, ErrEmptyVocabulary) {
			t.Errorf("corpus %v: got %v, want ErrEmptyVocabulary", corpus, err)
		}
	}
}

func TestTransform_L2Normalized(t *testing.T) {
	v, _ := FitVectorizer([]string{"hello world", "hello there", "what are your branch hour"})
	x := v.Transform("hello world world")

	var norm float64
	for _, w := range x {
		norm += w * w
	}
	if math.Abs(norm-1) > eps {
		t.Errorf("L2 norm: got %v, want 1", math.Sqrt(norm))
	}
}

func TestTransform_OutOfVocabulary(t *testing.T) {
	v, _ := FitVectorizer([]string{"hello world"})

	x := v.Transform("completely unseen tokens")
	for i, w := range x {
		if w != 0 {
			t.Errorf("oov vector[%d]: got %v, want 0", i, w)
		}
	}
}

func TestTransform_Empty(t *testing.T) {
	v, _ := FitVectorizer([]string{"hello world"})
	x := v.Transform("")
	if len(x) != v.NumFeatures() {
		t.Fatalf("length: got %d, want %d", len(x), v.NumFeatures())
	}
	for _, w := range x {
		if w != 0 {
			t.Error("empty input must yield a zero vector")
		}
	}
}

func TestVectorizerState_RoundTrip(t *testing.T) {
	v, _ := FitVectorizer([]string{"hello world", "hello there", "lost my card"})
	restored, err := VectorizerFromState(v.State())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, doc := range []string{"hello", "lost card", "world there hello", ""} {
		got := restored.Transform(doc)
		want := v.Transform(doc)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Transform(%q) differs after round trip: %v vs %v", doc, got, want)
		}
	}
}

func TestVectorizerFromState_Inconsistent(t *testing.T) {
	_, err := VectorizerFromState(VectorizerState{Terms: []string{"a", "b"}, IDF: []float64{1}})
	if err == nil {
		t.Fatal("expected error for mismatched tables")
	}
}
