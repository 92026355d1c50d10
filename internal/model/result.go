package model

import "github.com/elliotchance/orderedmap/v2"

// FeatureMap is an insertion-ordered mapping from feature name to value.
// Values are scalars, nested FeatureMaps, []float64 (histograms), or
// reference types (TableRef, CardRef, SegmentRef).
type FeatureMap = orderedmap.OrderedMap[string, any]

// NewFeatureMap returns an empty feature map.
func NewFeatureMap() *FeatureMap {
	return orderedmap.NewOrderedMap[string, any]()
}

// Constituents maps a field key to its nested extraction result, preserving
// column order.
type Constituents = orderedmap.OrderedMap[string, *ExtractionResult]

// NewConstituents returns an empty constituents map.
func NewConstituents() *Constituents {
	return orderedmap.NewOrderedMap[string, *ExtractionResult]()
}

// ExtractionResult is the uniform output shape of feature extraction.
//
// Field and Card produce a leaf feature vector in Features (Card also fills
// Constituents and retains its Dataset for per-row display). Table and
// Segment produce per-column Constituents with a summary Features map that
// always carries at least the owning table.
type ExtractionResult struct {
	Model        Model
	Features     *FeatureMap
	Constituents *Constituents
	Dataset      *Dataset
	Sampled      bool
}

// Grouped reports whether the result is compared field-by-field rather than
// as a single leaf feature vector. Cards carry constituents too, but their
// leaf feature map is the comparison subject, so they compare as leaves.
func (r *ExtractionResult) Grouped() bool {
	switch r.Model.(type) {
	case Table, Segment:
		return r.Constituents != nil
	}
	return false
}

// Comparison is the outcome of comparing two feature vectors: an overall
// distance, per-feature differences in collaborator order, and a
// significance verdict.
type Comparison struct {
	Distance    float64
	Differences *orderedmap.OrderedMap[string, float64]
	Significant bool
}

// Contribution ranks one feature's share of the difference between two
// models. Field is empty in the leaf case, where Value is the feature's raw
// difference rather than a distance-scaled contribution.
type Contribution struct {
	Feature string
	Field   string
	Value   float64
}

// CompareResult is the output of comparing two models. Exactly one of Leaf
// and Fields is set, mirroring the leaf/grouped split of ExtractionResult.
type CompareResult struct {
	A, B         Model
	Leaf         *Comparison
	Fields       *orderedmap.OrderedMap[string, *Comparison]
	Contributors []Contribution
	Sampled      bool
	Significant  bool
}
