// Package extract turns an analyzable model into a uniform feature-vector
// result. One handler per model variant; all of them share the cost policy
// and produce the same ExtractionResult shape.
package extract

import (
	"context"
	"fmt"
	"iter"

	"github.com/dbsmedya/goinsight/internal/align"
	"github.com/dbsmedya/goinsight/internal/cost"
	"github.com/dbsmedya/goinsight/internal/logger"
	"github.com/dbsmedya/goinsight/internal/model"
)

// DataSource retrieves raw model data. Failures propagate unmodified; this
// layer adds no retries.
type DataSource interface {
	FieldValues(ctx context.Context, f model.Field, qo model.QueryOpts) ([]any, error)
	TableValues(ctx context.Context, t model.Table, qo model.QueryOpts) (*model.Dataset, error)
	CardValues(ctx context.Context, c model.Card) (*model.Dataset, error)
	SegmentValues(ctx context.Context, s model.Segment, qo model.QueryOpts) (*model.Dataset, error)
}

// FeatureCalculator computes feature vectors from raw values.
type FeatureCalculator interface {
	FieldFeatures(opts model.Options, field model.Field, values []any) (*model.FeatureMap, error)
	DatasetFeatures(opts model.Options, ds *model.Dataset) (*model.Constituents, error)
	SeriesFeatures(opts model.Options, x, y model.ColumnMeta, rows iter.Seq[[]any]) (*model.FeatureMap, error)
}

// Extractor dispatches extraction over the model variants.
type Extractor struct {
	source DataSource
	calc   FeatureCalculator
	log    *logger.Logger
}

// New creates an extractor over the given collaborators.
func New(source DataSource, calc FeatureCalculator, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Extractor{source: source, calc: calc, log: log}
}

// Extract produces the feature-vector result for a model under the given
// options.
func (e *Extractor) Extract(ctx context.Context, opts model.Options, m model.Model) (*model.ExtractionResult, error) {
	switch m := m.(type) {
	case model.Field:
		return e.extractField(ctx, opts, m)
	case model.Table:
		return e.extractTable(ctx, opts, m)
	case model.Card:
		return e.extractCard(ctx, opts, m)
	case model.Segment:
		return e.extractSegment(ctx, opts, m)
	}
	return nil, fmt.Errorf("unsupported model type %T", m)
}

// extractField computes a leaf feature vector over a single column's values.
func (e *Extractor) extractField(ctx context.Context, opts model.Options, f model.Field) (*model.ExtractionResult, error) {
	values, err := e.source.FieldValues(ctx, f, cost.QueryOpts(opts))
	if err != nil {
		return nil, err
	}

	features, err := e.calc.FieldFeatures(opts, f, values)
	if err != nil {
		return nil, err
	}
	features.Set("table", f.Table)

	return &model.ExtractionResult{
		Model:    f,
		Features: features,
		Sampled:  cost.IsSampled(opts, len(values)),
	}, nil
}

// extractTable computes per-column constituents over a table's dataset.
func (e *Extractor) extractTable(ctx context.Context, opts model.Options, t model.Table) (*model.ExtractionResult, error) {
	ds, err := e.source.TableValues(ctx, t, cost.QueryOpts(opts))
	if err != nil {
		return nil, err
	}

	constituents, err := e.calc.DatasetFeatures(opts, ds)
	if err != nil {
		return nil, err
	}

	features := model.NewFeatureMap()
	features.Set("table", t.Ref())

	return &model.ExtractionResult{
		Model:        t,
		Features:     features,
		Constituents: constituents,
		Sampled:      cost.IsSampled(opts, ds.RowCount()),
	}, nil
}

// extractCard analyzes a saved question's result set. The card query runs
// without a row limit: there is no sampling support for cards. The Sampled
// flag is still computed, so a result that happens to hit the cap reports
// sampled.
func (e *Extractor) extractCard(ctx context.Context, opts model.Options, c model.Card) (*model.ExtractionResult, error) {
	ds, err := e.source.CardValues(ctx, c)
	if err != nil {
		return nil, err
	}

	features := model.NewFeatureMap()
	features.Set("card", c.Ref())
	features.Set("table", c.Table)

	if x, y, ok := seriesColumns(ds.Cols); ok {
		rows, err := align.Align([]string{x.Name, y.Name}, ds.Cols, ds.Rows)
		if err != nil {
			return nil, err
		}

		copts := opts
		copts.Query = c.Query
		series, err := e.calc.SeriesFeatures(copts, x, y, rows)
		if err != nil {
			return nil, err
		}
		for el := series.Front(); el != nil; el = el.Next() {
			features.Set(el.Key, el.Value)
		}
	} else {
		// No usable breakout/aggregation pair: a partial result with
		// just the card and table references, not an error.
		e.log.WithModel(c.Kind(), c.Name).Debug("no series columns resolved, returning summary only")
	}

	constituents, err := e.calc.DatasetFeatures(opts, ds)
	if err != nil {
		return nil, err
	}

	return &model.ExtractionResult{
		Model:        c,
		Features:     features,
		Constituents: constituents,
		Dataset:      ds,
		Sampled:      cost.IsSampled(opts, ds.RowCount()),
	}, nil
}

// extractSegment computes per-column constituents over a filtered table.
func (e *Extractor) extractSegment(ctx context.Context, opts model.Options, s model.Segment) (*model.ExtractionResult, error) {
	ds, err := e.source.SegmentValues(ctx, s, cost.QueryOpts(opts))
	if err != nil {
		return nil, err
	}

	constituents, err := e.calc.DatasetFeatures(opts, ds)
	if err != nil {
		return nil, err
	}

	features := model.NewFeatureMap()
	features.Set("table", s.Table)
	features.Set("segment", s.Ref())

	return &model.ExtractionResult{
		Model:        s,
		Features:     features,
		Constituents: constituents,
		Sampled:      cost.IsSampled(opts, ds.RowCount()),
	}, nil
}

// seriesColumns resolves the two semantic roles of interest in a card
// result: the first breakout column, and either the first aggregation column
// or the second breakout column.
func seriesColumns(cols []model.ColumnMeta) (x, y model.ColumnMeta, ok bool) {
	var breakouts, aggregations []model.ColumnMeta
	for _, col := range cols {
		switch col.Source {
		case model.SourceBreakout:
			breakouts = append(breakouts, col)
		case model.SourceAggregation:
			aggregations = append(aggregations, col)
		}
	}

	if len(breakouts) == 0 {
		return x, y, false
	}
	x = breakouts[0]
	switch {
	case len(aggregations) > 0:
		return x, aggregations[0], true
	case len(breakouts) > 1:
		return x, breakouts[1], true
	}
	return x, y, false
}
