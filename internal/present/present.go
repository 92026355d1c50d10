// Package present turns raw extraction and comparison results into their
// display form: numeric leaves rounded to a magnitude-relative precision and
// feature maps enriched with human-readable descriptions.
package present

import (
	"math"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/goinsight/internal/model"
)

// basePrecision is the number of decimals kept for values of magnitude >= 1.
const basePrecision = 2

// Describer enriches a feature map with descriptive metadata. Enrichment is
// a pure passthrough augmentation; values it does not recognize are left
// untouched.
type Describer interface {
	Enrich(features *model.FeatureMap) *model.FeatureMap
}

// Presenter applies rounding and enrichment recursively over result trees.
type Presenter struct {
	describer Describer
}

// New creates a presenter. A nil describer disables enrichment.
func New(describer Describer) *Presenter {
	if describer == nil {
		describer = noopDescriber{}
	}
	return &Presenter{describer: describer}
}

// Present returns a display-ready copy of an extraction result: every
// numeric leaf rounded, every feature map enriched, constituents transformed
// recursively with their keys preserved.
func (p *Presenter) Present(r *model.ExtractionResult) *model.ExtractionResult {
	out := &model.ExtractionResult{
		Model:   r.Model,
		Dataset: r.Dataset,
		Sampled: r.Sampled,
	}
	if r.Features != nil {
		out.Features = p.describer.Enrich(roundFeatures(r.Features))
	}
	if r.Constituents != nil {
		constituents := model.NewConstituents()
		for el := r.Constituents.Front(); el != nil; el = el.Next() {
			constituents.Set(el.Key, p.Present(el.Value))
		}
		out.Constituents = constituents
	}
	return out
}

// PresentCompare applies the same rounding rule to a comparison result.
func (p *Presenter) PresentCompare(cr *model.CompareResult) *model.CompareResult {
	out := &model.CompareResult{
		A:           cr.A,
		B:           cr.B,
		Sampled:     cr.Sampled,
		Significant: cr.Significant,
	}
	if cr.Leaf != nil {
		out.Leaf = roundComparison(cr.Leaf)
	}
	if cr.Fields != nil {
		fields := orderedmap.NewOrderedMap[string, *model.Comparison]()
		for el := cr.Fields.Front(); el != nil; el = el.Next() {
			fields.Set(el.Key, roundComparison(el.Value))
		}
		out.Fields = fields
	}
	out.Contributors = make([]model.Contribution, len(cr.Contributors))
	for i, c := range cr.Contributors {
		c.Value = RoundValue(c.Value)
		out.Contributors[i] = c
	}
	return out
}

// RoundValue rounds x keeping basePrecision decimals for values of magnitude
// >= 1, and proportionally more decimals for values below 1, so small numbers
// keep significant digits instead of collapsing to zero.
func RoundValue(x float64) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	decimals := basePrecision - min(orderOfMagnitude(x), 0)
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

func orderOfMagnitude(x float64) int {
	return int(math.Floor(math.Log10(math.Abs(x))))
}

func roundComparison(cmp *model.Comparison) *model.Comparison {
	out := &model.Comparison{
		Distance:    RoundValue(cmp.Distance),
		Significant: cmp.Significant,
	}
	if cmp.Differences != nil {
		differences := orderedmap.NewOrderedMap[string, float64]()
		for el := cmp.Differences.Front(); el != nil; el = el.Next() {
			differences.Set(el.Key, RoundValue(el.Value))
		}
		out.Differences = differences
	}
	return out
}

// roundFeatures returns a copy of the feature map with every numeric leaf
// rounded, recursing through nested maps and sequences.
func roundFeatures(features *model.FeatureMap) *model.FeatureMap {
	out := model.NewFeatureMap()
	for el := features.Front(); el != nil; el = el.Next() {
		out.Set(el.Key, roundAny(el.Value))
	}
	return out
}

func roundAny(v any) any {
	switch v := v.(type) {
	case float64:
		return RoundValue(v)
	case float32:
		return RoundValue(float64(v))
	case *model.FeatureMap:
		return roundFeatures(v)
	case []float64:
		out := make([]float64, len(v))
		for i, f := range v {
			out[i] = RoundValue(f)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = roundAny(e)
		}
		return out
	default:
		return v
	}
}

type noopDescriber struct{}

func (noopDescriber) Enrich(features *model.FeatureMap) *model.FeatureMap {
	return features
}
