package corpus

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// TrainTestSplit shuffles samples with a seeded generator and holds out
// ceil(len*testRatio) of them. The same seed always yields the same split.
func TrainTestSplit(samples []Sample, testRatio float64, seed uint64) (train, test []Sample, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, fmt.Errorf("test ratio must be in (0, 1), got %g", testRatio)
	}
	n := len(samples)
	nTest := int(math.Ceil(float64(n) * testRatio))
	if n < 2 || nTest >= n {
		return nil, nil, fmt.Errorf("corpus of %d samples is too small to split at %g", n, testRatio)
	}

	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	test = make([]Sample, 0, nTest)
	train = make([]Sample, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, samples[idx])
		} else {
			train = append(train, samples[idx])
		}
	}
	return train, test, nil
}
