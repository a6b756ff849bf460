package ml

import (
	"math"
	"math/rand"
)

// TrainTestSplit partitions sample indices into a shuffled train/test split.
// The seed fixes the shuffle so evaluation is reproducible across runs.
// The test partition holds ceil(n*testSize) samples, but never all of them:
// at least one sample always remains for training. With a single sample the
// test partition is empty.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int) {
	if n <= 0 {
		return nil, nil
	}

	numTest := int(math.Ceil(float64(n) * testSize))
	if numTest >= n {
		numTest = n - 1
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	if numTest > 0 {
		test = perm[:numTest]
	}
	train = perm[numTest:]
	return train, test
}
