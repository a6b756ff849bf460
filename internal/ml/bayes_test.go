package ml

import (
	"math"
	"reflect"
	"testing"
)

// fitToy trains a vectorizer+classifier over a tiny two-class corpus.
func fitToy(t *testing.T) (*Vectorizer, *NaiveBayes) {
	t.Helper()
	corpus := []string{"hello", "hi there", "good morning", "what are your branch hour", "when do you open"}
	labels := []string{"greeting", "greeting", "greeting", "branch_hours", "branch_hours"}

	v, err := FitVectorizer(corpus)
	if err != nil {
		t.Fatalf("fit vectorizer: %v", err)
	}
	nb, err := FitNaiveBayes(v.TransformAll(corpus), labels, DefaultAlpha)
	if err != nil {
		t.Fatalf("fit naive bayes: %v", err)
	}
	return v, nb
}

func TestFitNaiveBayes_ClassesSorted(t *testing.T) {
	_, nb := fitToy(t)
	want := []string{"branch_hours", "greeting"}
	if !reflect.DeepEqual(nb.Classes(), want) {
		t.Errorf("classes: got %v, want %v", nb.Classes(), want)
	}
}

func TestPredict_TrainingExamples(t *testing.T) {
	v, nb := fitToy(t)

	tests := []struct {
		doc  string
		want string
	}{
		{"hello", "greeting"},
		{"hi there", "greeting"},
		{"what are your branch hour", "branch_hours"},
	}
	for _, tc := range tests {
		got, conf := nb.Predict(v.Transform(tc.doc))
		if got != tc.want {
			t.Errorf("Predict(%q) = %q, want %q", tc.doc, got, tc.want)
		}
		if conf <= 0 || conf > 1 {
			t.Errorf("Predict(%q) confidence %v out of (0,1]", tc.doc, conf)
		}
	}
}

func TestProba_SumsToOne(t *testing.T) {
	v, nb := fitToy(t)
	for _, doc := range []string{"hello", "branch hour", "unrelated gibberish", ""} {
		probs := nb.Proba(v.Transform(doc))
		var sum float64
		for _, p := range probs {
			if p < 0 || p > 1 {
				t.Errorf("Proba(%q): probability %v out of range", doc, p)
			}
			sum += p
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("Proba(%q) sums to %v, want 1", doc, sum)
		}
	}
}

func TestProba_ZeroVectorFallsBackToPriors(t *testing.T) {
	v, nb := fitToy(t)
	probs := nb.Proba(v.Transform("zzz qqq"))

	// 3 of 5 samples are greetings; with no evidence the posterior is the prior.
	idx := -1
	for i, c := range nb.Classes() {
		if c == "greeting" {
			idx = i
		}
	}
	if math.Abs(probs[idx]-0.6) > 1e-9 {
		t.Errorf("prior for greeting: got %v, want 0.6", probs[idx])
	}
}

func TestFitNaiveBayes_Errors(t *testing.T) {
	if _, err := FitNaiveBayes(nil, nil, DefaultAlpha); err == nil {
		t.Error("expected error for empty training set")
	}
	if _, err := FitNaiveBayes([][]float64{{1}}, []string{"a", "b"}, DefaultAlpha); err == nil {
		t.Error("expected error for label count mismatch")
	}
	if _, err := FitNaiveBayes([][]float64{{1, 0}, {1}}, []string{"a", "b"}, DefaultAlpha); err == nil {
		t.Error("expected error for ragged feature matrix")
	}
}

func TestNaiveBayesState_RoundTrip(t *testing.T) {
	v, nb := fitToy(t)
	restored, err := NaiveBayesFromState(nb.State())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, doc := range []string{"hello", "branch hour", ""} {
		x := v.Transform(doc)
		gotTag, gotConf := restored.Predict(x)
		wantTag, wantConf := nb.Predict(x)
		if gotTag != wantTag || math.Abs(gotConf-wantConf) > 1e-12 {
			t.Errorf("Predict(%q) differs after round trip: %s/%v vs %s/%v", doc, gotTag, gotConf, wantTag, wantConf)
		}
	}
}

func TestNaiveBayesFromState_Inconsistent(t *testing.T) {
	_, err := NaiveBayesFromState(NaiveBayesState{
		Classes:       []string{"a", "b"},
		ClassLogPrior: []float64{-0.5},
	})
	if err == nil {
		t.Fatal("expected error for mismatched tables")
	}

	if _, err := NaiveBayesFromState(NaiveBayesState{}); err == nil {
		t.Fatal("expected error for empty state")
	}
}
