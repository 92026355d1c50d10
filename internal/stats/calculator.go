// Package stats computes statistical feature vectors from raw column values
// and measures the distance between two such vectors. It provides the default
// implementations behind the extraction and comparison collaborator
// interfaces.
package stats

import (
	"fmt"
	"iter"
	"math"

	"github.com/dbsmedya/goinsight/internal/model"
)

// histogramBins is the fixed bucket count for numeric value histograms.
const histogramBins = 10

// distinctCap bounds distinct-value tracking under a linear computation
// budget; beyond the cap the distinct ratio becomes a lower-bound estimate.
const distinctCap = 10000

// Calculator computes feature vectors from raw values.
type Calculator struct{}

// FieldFeatures computes the leaf feature vector for a single column's
// values. Numeric columns get distribution features (mean, sd, min, max,
// histogram); everything else gets length features. Nil values count toward
// nil_rate and are excluded from the rest.
func (c Calculator) FieldFeatures(opts model.Options, field model.Field, values []any) (*model.FeatureMap, error) {
	features := model.NewFeatureMap()
	features.Set("count", float64(len(values)))
	features.Set("nil_rate", nilRate(values))

	nonNil := withoutNils(values)
	features.Set("distinct_ratio", distinctRatio(opts, nonNil))

	if nums, ok := numericValues(nonNil); ok && len(nums) > 0 {
		min, max, mean, sd := moments(nums)
		features.Set("min", min)
		features.Set("max", max)
		features.Set("mean", mean)
		features.Set("sd", sd)
		features.Set("histogram", histogram(nums, min, max))
		return features, nil
	}

	if len(nonNil) > 0 {
		minLen, maxLen, avgLen := lengths(nonNil)
		features.Set("min_length", minLen)
		features.Set("max_length", maxLen)
		features.Set("avg_length", avgLen)
	}
	return features, nil
}

// DatasetFeatures computes a leaf extraction result per column, keyed by
// column name in dataset order.
func (c Calculator) DatasetFeatures(opts model.Options, ds *model.Dataset) (*model.Constituents, error) {
	constituents := model.NewConstituents()
	for i, col := range ds.Cols {
		features, err := c.FieldFeatures(opts, model.Field{Name: col.Name, BaseType: col.BaseType}, ds.Column(i))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		constituents.Set(col.Name, &model.ExtractionResult{Features: features})
	}
	return constituents, nil
}

// SeriesFeatures computes features over a (breakout, aggregation) column
// pair. Rows are consumed exactly once. When the breakout values are not
// numeric, row ordinals stand in as the regression x axis.
func (c Calculator) SeriesFeatures(opts model.Options, x, y model.ColumnMeta, rows iter.Seq[[]any]) (*model.FeatureMap, error) {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	yMin, yMax := math.Inf(1), math.Inf(-1)

	ordinal := 0.0
	for row := range rows {
		yv, ok := asFloat(row[1])
		if !ok {
			ordinal++
			continue
		}
		xv, ok := asFloat(row[0])
		if !ok {
			xv = ordinal
		}
		ordinal++

		n++
		sumX += xv
		sumY += yv
		sumXX += xv * xv
		sumYY += yv * yv
		sumXY += xv * yv
		yMin = math.Min(yMin, yv)
		yMax = math.Max(yMax, yv)
	}

	features := model.NewFeatureMap()
	features.Set("count", n)
	if n == 0 {
		return features, nil
	}

	yMean := sumY / n
	features.Set("y_min", yMin)
	features.Set("y_max", yMax)
	features.Set("y_mean", yMean)
	features.Set("y_sd", math.Sqrt(math.Max(0, sumYY/n-yMean*yMean)))

	// Least-squares fit of y over x.
	denom := n*sumXX - sumX*sumX
	if denom != 0 {
		slope := (n*sumXY - sumX*sumY) / denom
		features.Set("slope", slope)
		features.Set("intercept", (sumY-slope*sumX)/n)
	}
	ySpread := n*sumYY - sumY*sumY
	if denom > 0 && ySpread > 0 {
		features.Set("correlation", (n*sumXY-sumX*sumY)/math.Sqrt(denom*ySpread))
	}
	return features, nil
}

func nilRate(values []any) float64 {
	if len(values) == 0 {
		return 0
	}
	nils := 0
	for _, v := range values {
		if v == nil {
			nils++
		}
	}
	return float64(nils) / float64(len(values))
}

func withoutNils(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func distinctRatio(opts model.Options, values []any) float64 {
	if len(values) == 0 {
		return 0
	}
	limit := distinctCap
	if opts.MaxCost.Computation >= model.ComputeUnbounded {
		limit = len(values)
	}
	seen := make(map[string]struct{})
	for _, v := range values {
		if len(seen) >= limit {
			break
		}
		seen[fmt.Sprint(v)] = struct{}{}
	}
	return float64(len(seen)) / float64(len(values))
}

// numericValues converts values to float64s; ok is false unless every value
// converts.
func numericValues(values []any) ([]float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		f, ok := asFloat(v)
		if !ok {
			return nil, false
		}
		nums = append(nums, f)
	}
	return nums, true
}

func moments(nums []float64) (min, max, mean, sd float64) {
	min, max = math.Inf(1), math.Inf(-1)
	var sum, sumSq float64
	for _, f := range nums {
		min = math.Min(min, f)
		max = math.Max(max, f)
		sum += f
		sumSq += f * f
	}
	n := float64(len(nums))
	mean = sum / n
	sd = math.Sqrt(math.Max(0, sumSq/n-mean*mean))
	return min, max, mean, sd
}

// histogram returns the fraction of values falling in each of histogramBins
// equal-width buckets between min and max.
func histogram(nums []float64, min, max float64) []float64 {
	bins := make([]float64, histogramBins)
	if max == min {
		bins[0] = 1
		return bins
	}
	width := (max - min) / histogramBins
	for _, f := range nums {
		i := int((f - min) / width)
		if i >= histogramBins {
			i = histogramBins - 1
		}
		bins[i]++
	}
	for i := range bins {
		bins[i] /= float64(len(nums))
	}
	return bins
}

func lengths(values []any) (minLen, maxLen, avgLen float64) {
	minLen = math.Inf(1)
	var sum float64
	for _, v := range values {
		l := float64(len(fmt.Sprint(v)))
		minLen = math.Min(minLen, l)
		maxLen = math.Max(maxLen, l)
		sum += l
	}
	avgLen = sum / float64(len(values))
	return minLen, maxLen, avgLen
}
