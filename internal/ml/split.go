package ml

import (
	"math"
	"math/rand/v2"

	"fjacquet/sales-insights/internal/parsererror"
)

// TrainTestSplit shuffles row indices with a seeded PCG source and puts the
// first ceil(testSize·n) of them in the test set. The same seed always yields
// the same split.
func TrainTestSplit(ds *Dataset, testSize float64, seed uint64) (train, test *Dataset, err error) {
	n := ds.Len()
	if n < 2 {
		return nil, nil, &parsererror.InsufficientDataError{Operation: "train/test split", Need: 2, Got: n}
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || nTest >= n {
		return nil, nil, &parsererror.InsufficientDataError{
			Operation: "train/test split",
			Reason:    "test size leaves an empty train or test set",
		}
	}

	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	return ds.Subset(perm[nTest:]), ds.Subset(perm[:nTest]), nil
}
