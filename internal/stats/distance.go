package stats

import (
	"math"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/goinsight/internal/model"
)

// significanceThreshold is the distance above which two feature vectors are
// reported as significantly different.
const significanceThreshold = 0.1

// Distance measures how far apart two feature vectors are.
type Distance struct{}

// Between returns the mean normalized difference over features shared by both
// vectors, with per-feature differences in a's key order. Non-numeric
// features (references, text) are skipped; histograms compare bucket-wise.
// The result is symmetric under swapping a and b.
func (Distance) Between(a, b *model.FeatureMap) model.Comparison {
	differences := orderedmap.NewOrderedMap[string, float64]()
	var total float64

	for el := a.Front(); el != nil; el = el.Next() {
		bv, ok := b.Get(el.Key)
		if !ok {
			continue
		}
		d, ok := featureDifference(el.Value, bv)
		if !ok {
			continue
		}
		differences.Set(el.Key, d)
		total += d
	}

	cmp := model.Comparison{Differences: differences}
	if differences.Len() > 0 {
		cmp.Distance = total / float64(differences.Len())
	}
	cmp.Significant = cmp.Distance > significanceThreshold
	return cmp
}

// featureDifference computes the normalized difference of one feature pair.
func featureDifference(a, b any) (float64, bool) {
	if ah, ok := a.([]float64); ok {
		bh, ok := b.([]float64)
		if !ok || len(ah) != len(bh) {
			return 0, false
		}
		return bucketDifference(ah, bh), true
	}

	af, ok := asFloat(a)
	if !ok {
		return 0, false
	}
	bf, ok := asFloat(b)
	if !ok {
		return 0, false
	}
	return scalarDifference(af, bf), true
}

// scalarDifference normalizes |a-b| by the combined magnitude, yielding a
// value in [0, 1].
func scalarDifference(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / (math.Abs(a) + math.Abs(b))
}

// bucketDifference is the mean absolute difference of two equal-length
// histograms whose buckets are already fractions.
func bucketDifference(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum / float64(len(a))
}
