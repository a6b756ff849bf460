package ml

import (
	"reflect"
	"testing"
)

func TestTrainTestSplit_Sizes(t *testing.T) {
	train, test := TrainTestSplit(10, 0.2, 42)
	if len(test) != 2 {
		t.Errorf("test size: got %d, want 2", len(test))
	}
	if len(train) != 8 {
		t.Errorf("train size: got %d, want 8", len(train))
	}

	// Every index appears exactly once across both partitions.
	seen := make(map[int]bool, 10)
	for _, i := range append(append([]int{}, train...), test...) {
		if seen[i] {
			t.Errorf("index %d appears twice", i)
		}
		seen[i] = true
	}
	if len(seen) != 10 {
		t.Errorf("indices covered: got %d, want 10", len(seen))
	}
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	train1, test1 := TrainTestSplit(20, 0.2, 42)
	train2, test2 := TrainTestSplit(20, 0.2, 42)
	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed must produce the same split")
	}

	_, test3 := TrainTestSplit(20, 0.2, 7)
	if reflect.DeepEqual(test1, test3) {
		t.Error("different seeds should shuffle differently")
	}
}

func TestTrainTestSplit_NeverEmptiesTrain(t *testing.T) {
	train, test := TrainTestSplit(1, 0.2, 42)
	if len(train) != 1 {
		t.Errorf("train size: got %d, want 1", len(train))
	}
	if len(test) != 0 {
		t.Errorf("test size: got %d, want 0", len(test))
	}

	train, test = TrainTestSplit(2, 0.9, 42)
	if len(train) < 1 {
		t.Error("train partition must keep at least one sample")
	}
	if len(train)+len(test) != 2 {
		t.Error("partitions must cover all samples")
	}
}

func TestTrainTestSplit_Empty(t *testing.T) {
	train, test := TrainTestSplit(0, 0.2, 42)
	if train != nil || test != nil {
		t.Errorf("got %v/%v, want nil/nil", train, test)
	}
}
