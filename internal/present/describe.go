package present

import "github.com/dbsmedya/goinsight/internal/model"

// featureDescriptions maps known feature keys to display descriptions.
var featureDescriptions = map[string]string{
	"count":          "Number of rows",
	"nil_rate":       "Share of missing values",
	"distinct_ratio": "Share of distinct values",
	"min":            "Smallest value",
	"max":            "Largest value",
	"mean":           "Average value",
	"sd":             "Standard deviation",
	"histogram":      "Value distribution",
	"min_length":     "Shortest value length",
	"max_length":     "Longest value length",
	"avg_length":     "Average value length",
	"y_min":          "Smallest aggregate",
	"y_max":          "Largest aggregate",
	"y_mean":         "Average aggregate",
	"y_sd":           "Aggregate standard deviation",
	"slope":          "Trend slope",
	"intercept":      "Trend intercept",
	"correlation":    "Correlation along the breakout",
	"table":          "Source table",
	"card":           "Source question",
	"segment":        "Source segment",
}

// StaticDescriber enriches feature maps from a built-in description table.
// Recognized features are wrapped as {value, description}; unknown features
// pass through unchanged.
type StaticDescriber struct{}

// Enrich implements Describer.
func (StaticDescriber) Enrich(features *model.FeatureMap) *model.FeatureMap {
	out := model.NewFeatureMap()
	for el := features.Front(); el != nil; el = el.Next() {
		description, ok := featureDescriptions[el.Key]
		if !ok {
			out.Set(el.Key, el.Value)
			continue
		}
		wrapped := model.NewFeatureMap()
		wrapped.Set("value", el.Value)
		wrapped.Set("description", description)
		out.Set(el.Key, wrapped)
	}
	return out
}
