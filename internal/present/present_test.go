package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goinsight/internal/model"
)

func TestRoundValue_MagnitudeAboveOneKeepsTwoDecimals(t *testing.T) {
	assert.Equal(t, 1234.57, RoundValue(1234.5678))
	assert.Equal(t, 1.23, RoundValue(1.2345))
	assert.Equal(t, -1234.57, RoundValue(-1234.5678))
}

func TestRoundValue_SmallValuesKeepSignificantDigits(t *testing.T) {
	got := RoundValue(0.0004567)
	assert.NotZero(t, got)
	assert.NotEqual(t, 0.0, got)
	assert.InDelta(t, 0.000457, got, 1e-9)
	// Naive 2-decimal rounding would have produced 0.
	assert.NotEqual(t, 0.0, got)
}

func TestRoundValue_Idempotent(t *testing.T) {
	for _, x := range []float64{1234.5678, 0.0004567, 3.14159, -0.025, 42, 0} {
		once := RoundValue(x)
		assert.Equal(t, once, RoundValue(once), "x=%v", x)
	}
}

func TestRoundValue_ZeroAndSpecials(t *testing.T) {
	assert.Equal(t, 0.0, RoundValue(0))
	assert.True(t, RoundValue(100.0) == 100.0)
}

func TestPresent_RoundsLeafFeatures(t *testing.T) {
	features := model.NewFeatureMap()
	features.Set("mean", 12.34567)
	features.Set("table", model.TableRef{Name: "orders"})
	features.Set("histogram", []float64{0.333333, 0.666667})

	result := New(nil).Present(&model.ExtractionResult{Features: features, Sampled: true})

	mean, _ := result.Features.Get("mean")
	assert.Equal(t, 12.35, mean)
	table, _ := result.Features.Get("table")
	assert.Equal(t, model.TableRef{Name: "orders"}, table)
	hist, _ := result.Features.Get("histogram")
	assert.Equal(t, []float64{0.333, 0.667}, hist)
	assert.True(t, result.Sampled)
}

func TestPresent_RecursesIntoConstituents(t *testing.T) {
	inner := model.NewFeatureMap()
	inner.Set("mean", 0.123456)
	constituents := model.NewConstituents()
	constituents.Set("total", &model.ExtractionResult{Features: inner})

	summary := model.NewFeatureMap()
	summary.Set("table", model.TableRef{Name: "orders"})

	result := New(nil).Present(&model.ExtractionResult{
		Features:     summary,
		Constituents: constituents,
	})

	require.Equal(t, 1, result.Constituents.Len())
	total, _ := result.Constituents.Get("total")
	mean, _ := total.Features.Get("mean")
	assert.Equal(t, 0.123, mean)
}

func TestPresent_DoesNotMutateInput(t *testing.T) {
	features := model.NewFeatureMap()
	features.Set("mean", 12.34567)
	in := &model.ExtractionResult{Features: features}

	_ = New(nil).Present(in)

	mean, _ := in.Features.Get("mean")
	assert.Equal(t, 12.34567, mean)
}

func TestStaticDescriber_WrapsKnownFeatures(t *testing.T) {
	features := model.NewFeatureMap()
	features.Set("mean", 12.35)
	features.Set("custom_metric", 1.0)

	enriched := StaticDescriber{}.Enrich(features)

	wrapped, _ := enriched.Get("mean")
	wrappedMap, ok := wrapped.(*model.FeatureMap)
	require.True(t, ok)
	value, _ := wrappedMap.Get("value")
	assert.Equal(t, 12.35, value)
	description, _ := wrappedMap.Get("description")
	assert.Equal(t, "Average value", description)

	custom, _ := enriched.Get("custom_metric")
	assert.Equal(t, 1.0, custom)
}

func TestPresentCompare_RoundsDistancesAndContributions(t *testing.T) {
	cr := &model.CompareResult{
		Leaf:         &model.Comparison{Distance: 0.123456, Significant: true},
		Contributors: []model.Contribution{{Feature: "mean", Value: 0.0123456}},
		Significant:  true,
	}

	out := New(StaticDescriber{}).PresentCompare(cr)

	assert.Equal(t, 0.123, out.Leaf.Distance)
	assert.Equal(t, 0.0123, out.Contributors[0].Value)
	assert.True(t, out.Significant)
}
