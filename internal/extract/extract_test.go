package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goinsight/internal/cost"
	"github.com/dbsmedya/goinsight/internal/model"
	"github.com/dbsmedya/goinsight/internal/stats"
)

// stubSource serves canned data per model variant.
type stubSource struct {
	fieldValues []any
	dataset     *model.Dataset

	fieldLimit   int
	tableLimit   int
	segmentLimit int
	segFilter    string
}

func (s *stubSource) FieldValues(_ context.Context, f model.Field, qo model.QueryOpts) ([]any, error) {
	s.fieldLimit = qo.Limit
	return s.fieldValues, nil
}

func (s *stubSource) TableValues(_ context.Context, t model.Table, qo model.QueryOpts) (*model.Dataset, error) {
	s.tableLimit = qo.Limit
	return s.dataset, nil
}

func (s *stubSource) CardValues(_ context.Context, c model.Card) (*model.Dataset, error) {
	return s.dataset, nil
}

func (s *stubSource) SegmentValues(_ context.Context, seg model.Segment, qo model.QueryOpts) (*model.Dataset, error) {
	s.segmentLimit = qo.Limit
	s.segFilter = seg.Filter
	return s.dataset, nil
}

type failingSource struct{ stubSource }

func (f *failingSource) FieldValues(context.Context, model.Field, model.QueryOpts) ([]any, error) {
	return nil, fmt.Errorf("connection lost")
}

func sampledOpts() model.Options {
	return model.Options{MaxCost: model.MaxCost{
		Computation: model.ComputeLinear,
		Query:       model.QuerySample,
	}}
}

func newTestExtractor(source DataSource) *Extractor {
	return New(source, stats.Calculator{}, nil)
}

func TestExtract_Field(t *testing.T) {
	source := &stubSource{fieldValues: []any{1.0, 2.0, 3.0}}
	e := newTestExtractor(source)

	f := model.Field{Name: "total", Table: model.TableRef{ID: 1, Name: "orders"}}
	result, err := e.Extract(context.Background(), sampledOpts(), f)
	require.NoError(t, err)

	assert.Equal(t, cost.SampleCap, source.fieldLimit)
	assert.Nil(t, result.Constituents)
	assert.False(t, result.Sampled)
	assert.False(t, result.Grouped())

	table, ok := result.Features.Get("table")
	require.True(t, ok)
	assert.Equal(t, f.Table, table)
	mean, _ := result.Features.Get("mean")
	assert.InDelta(t, 2.0, mean.(float64), 1e-9)
}

func TestExtract_FieldSampledAtCap(t *testing.T) {
	values := make([]any, cost.SampleCap)
	for i := range values {
		values[i] = float64(i)
	}
	e := newTestExtractor(&stubSource{fieldValues: values})

	result, err := e.Extract(context.Background(), sampledOpts(),
		model.Field{Name: "total", Table: model.TableRef{Name: "orders"}})
	require.NoError(t, err)
	assert.True(t, result.Sampled)
}

func TestExtract_Table(t *testing.T) {
	ds := &model.Dataset{
		Cols: []model.ColumnMeta{{Name: "id"}, {Name: "total"}, {Name: "note"}},
		Rows: [][]any{{1, 10.0, "a"}, {2, 20.0, "b"}},
	}
	source := &stubSource{dataset: ds}
	e := newTestExtractor(source)

	tbl := model.Table{ID: 3, Name: "orders"}
	result, err := e.Extract(context.Background(), sampledOpts(), tbl)
	require.NoError(t, err)

	assert.Equal(t, cost.SampleCap, source.tableLimit)
	assert.True(t, result.Grouped())
	require.NotNil(t, result.Constituents)
	assert.Equal(t, 3, result.Constituents.Len())

	// Summary features carry only the table reference.
	assert.Equal(t, 1, result.Features.Len())
	table, _ := result.Features.Get("table")
	assert.Equal(t, tbl.Ref(), table)
}

func TestExtract_CardComputesSeriesOverAlignedColumns(t *testing.T) {
	// Aggregation column deliberately placed before the breakout column:
	// the aligner must repair the order before series computation.
	ds := &model.Dataset{
		Cols: []model.ColumnMeta{
			{Name: "sum_total", Source: model.SourceAggregation},
			{Name: "day", Source: model.SourceBreakout},
		},
		Rows: [][]any{{2.0, 1.0}, {4.0, 2.0}, {6.0, 3.0}},
	}
	e := newTestExtractor(&stubSource{dataset: ds})

	card := model.Card{ID: 9, Name: "revenue", Table: model.TableRef{Name: "orders"}, Query: "SELECT ..."}
	result, err := e.Extract(context.Background(), sampledOpts(), card)
	require.NoError(t, err)

	assert.False(t, result.Grouped())
	require.NotNil(t, result.Dataset)
	assert.Equal(t, 2, result.Constituents.Len())

	cardRef, _ := result.Features.Get("card")
	assert.Equal(t, card.Ref(), cardRef)
	_, hasTable := result.Features.Get("table")
	assert.True(t, hasTable)

	// Series ran over (day, sum_total): y doubles x.
	slope, ok := result.Features.Get("slope")
	require.True(t, ok)
	assert.InDelta(t, 2.0, slope.(float64), 1e-9)
}

func TestExtract_CardDegradesWithoutSeriesColumns(t *testing.T) {
	ds := &model.Dataset{
		Cols: []model.ColumnMeta{
			{Name: "sum_total", Source: model.SourceAggregation},
		},
		Rows: [][]any{{2.0}},
	}
	e := newTestExtractor(&stubSource{dataset: ds})

	card := model.Card{Name: "lonely aggregate", Table: model.TableRef{Name: "orders"}}
	result, err := e.Extract(context.Background(), sampledOpts(), card)
	require.NoError(t, err)

	// Partial result: card and table references only.
	assert.Equal(t, []string{"card", "table"}, result.Features.Keys())
}

func TestExtract_CardUsesSecondBreakoutWithoutAggregation(t *testing.T) {
	ds := &model.Dataset{
		Cols: []model.ColumnMeta{
			{Name: "day", Source: model.SourceBreakout},
			{Name: "rank", Source: model.SourceBreakout},
		},
		Rows: [][]any{{1.0, 3.0}, {2.0, 6.0}},
	}
	e := newTestExtractor(&stubSource{dataset: ds})

	result, err := e.Extract(context.Background(), sampledOpts(),
		model.Card{Name: "pairs", Table: model.TableRef{Name: "orders"}})
	require.NoError(t, err)

	_, ok := result.Features.Get("slope")
	assert.True(t, ok)
}

func TestExtract_Segment(t *testing.T) {
	ds := &model.Dataset{
		Cols: []model.ColumnMeta{{Name: "id"}, {Name: "total"}},
		Rows: [][]any{{1, 10.0}},
	}
	source := &stubSource{dataset: ds}
	e := newTestExtractor(source)

	seg := model.Segment{ID: 5, Name: "recent", Table: model.TableRef{Name: "orders"}, Filter: "created_at > '2026-01-01'"}
	result, err := e.Extract(context.Background(), sampledOpts(), seg)
	require.NoError(t, err)

	assert.Equal(t, cost.SampleCap, source.segmentLimit)
	assert.Equal(t, seg.Filter, source.segFilter)
	assert.True(t, result.Grouped())
	assert.Equal(t, []string{"table", "segment"}, result.Features.Keys())
}

func TestExtract_RetrievalErrorsPropagate(t *testing.T) {
	e := newTestExtractor(&failingSource{})

	_, err := e.Extract(context.Background(), sampledOpts(),
		model.Field{Name: "total", Table: model.TableRef{Name: "orders"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
}

var _ FeatureCalculator = stats.Calculator{}
