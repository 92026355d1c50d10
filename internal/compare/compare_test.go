package compare

import (
	"context"
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/goinsight/internal/breaks"
	"github.com/dbsmedya/goinsight/internal/cost"
	"github.com/dbsmedya/goinsight/internal/extract"
	"github.com/dbsmedya/goinsight/internal/model"
	"github.com/dbsmedya/goinsight/internal/stats"
)

// mapSource serves canned data keyed by model name.
type mapSource struct {
	fields   map[string][]any
	datasets map[string]*model.Dataset
}

func (s *mapSource) FieldValues(_ context.Context, f model.Field, _ model.QueryOpts) ([]any, error) {
	return s.fields[f.Name], nil
}

func (s *mapSource) TableValues(_ context.Context, t model.Table, _ model.QueryOpts) (*model.Dataset, error) {
	return s.datasets[t.Name], nil
}

func (s *mapSource) CardValues(_ context.Context, c model.Card) (*model.Dataset, error) {
	return s.datasets[c.Name], nil
}

func (s *mapSource) SegmentValues(_ context.Context, seg model.Segment, _ model.QueryOpts) (*model.Dataset, error) {
	return s.datasets[seg.Name], nil
}

func newComparator(source extract.DataSource) *Comparator {
	extractor := extract.New(source, stats.Calculator{}, nil)
	return New(extractor, stats.Distance{}, breaks.HeadTails{}, nil)
}

func sampledOpts() model.Options {
	return model.Options{MaxCost: model.MaxCost{
		Computation: model.ComputeLinear,
		Query:       model.QuerySample,
	}}
}

func TestCompare_IdenticalFieldsAreNotSignificant(t *testing.T) {
	source := &mapSource{fields: map[string][]any{
		"total": {1.0, 2.0, 3.0, 4.0},
	}}
	c := newComparator(source)

	f := model.Field{Name: "total", Table: model.TableRef{Name: "orders"}}
	result, err := c.Compare(context.Background(), sampledOpts(), f, f)
	require.NoError(t, err)

	require.NotNil(t, result.Leaf)
	assert.Nil(t, result.Fields)
	assert.InDelta(t, 0.0, result.Leaf.Distance, 1e-9)
	assert.False(t, result.Significant)
	for _, contribution := range result.Contributors {
		assert.Zero(t, contribution.Value)
		assert.Empty(t, contribution.Field)
	}
}

func TestCompare_TableAgainstItself(t *testing.T) {
	ds := &model.Dataset{
		Cols: []model.ColumnMeta{{Name: "id"}, {Name: "total"}, {Name: "note"}},
		Rows: [][]any{{1, 10.0, "a"}, {2, 20.0, "b"}},
	}
	c := newComparator(&mapSource{datasets: map[string]*model.Dataset{"orders": ds}})

	tbl := model.Table{Name: "orders"}
	result, err := c.Compare(context.Background(), sampledOpts(), tbl, tbl)
	require.NoError(t, err)

	require.NotNil(t, result.Fields)
	assert.Equal(t, 3, result.Fields.Len())
	for el := result.Fields.Front(); el != nil; el = el.Next() {
		assert.InDelta(t, 0.0, el.Value.Distance, 1e-9, "field %s", el.Key)
	}
	assert.False(t, result.Significant)
	assert.Empty(t, result.Contributors)
}

func TestCompare_DifferingFieldDominatesContributors(t *testing.T) {
	a := &model.Dataset{
		Cols: []model.ColumnMeta{{Name: "id"}, {Name: "total"}},
		Rows: [][]any{{1, 10.0}, {2, 12.0}, {3, 11.0}},
	}
	b := &model.Dataset{
		Cols: []model.ColumnMeta{{Name: "id"}, {Name: "total"}},
		Rows: [][]any{{1, 5000.0}, {2, 7000.0}, {3, 6000.0}},
	}
	c := newComparator(&mapSource{datasets: map[string]*model.Dataset{
		"orders":  a,
		"refunds": b,
	}})

	result, err := c.Compare(context.Background(), sampledOpts(),
		model.Table{Name: "orders"}, model.Table{Name: "refunds"})
	require.NoError(t, err)

	assert.True(t, result.Significant)
	require.NotEmpty(t, result.Contributors)
	for _, contribution := range result.Contributors {
		assert.Equal(t, "total", contribution.Field)
	}
	// Ranked descending.
	for i := 1; i < len(result.Contributors); i++ {
		assert.GreaterOrEqual(t,
			result.Contributors[i-1].Value, result.Contributors[i].Value)
	}
}

func TestCompare_DropsConstituentsMissingOnEitherSide(t *testing.T) {
	a := &model.Dataset{
		Cols: []model.ColumnMeta{{Name: "id"}, {Name: "only_a"}},
		Rows: [][]any{{1, 1.0}},
	}
	b := &model.Dataset{
		Cols: []model.ColumnMeta{{Name: "id"}, {Name: "only_b"}},
		Rows: [][]any{{1, 2.0}},
	}
	c := newComparator(&mapSource{datasets: map[string]*model.Dataset{
		"orders":  a,
		"refunds": b,
	}})

	result, err := c.Compare(context.Background(), sampledOpts(),
		model.Table{Name: "orders"}, model.Table{Name: "refunds"})
	require.NoError(t, err)

	assert.Equal(t, []string{"id"}, result.Fields.Keys())
}

func TestCompare_DistanceSymmetricUnderSwap(t *testing.T) {
	source := &mapSource{fields: map[string][]any{
		"total":  {1.0, 2.0, 3.0},
		"amount": {10.0, 40.0, 90.0},
	}}
	c := newComparator(source)

	fa := model.Field{Name: "total", Table: model.TableRef{Name: "orders"}}
	fb := model.Field{Name: "amount", Table: model.TableRef{Name: "refunds"}}

	ab, err := c.Compare(context.Background(), sampledOpts(), fa, fb)
	require.NoError(t, err)
	ba, err := c.Compare(context.Background(), sampledOpts(), fb, fa)
	require.NoError(t, err)

	assert.InDelta(t, ab.Leaf.Distance, ba.Leaf.Distance, 1e-12)
}

func TestCompare_SampledWhenEitherSideSampled(t *testing.T) {
	capped := make([]any, cost.SampleCap)
	for i := range capped {
		capped[i] = float64(i)
	}
	source := &mapSource{fields: map[string][]any{
		"total":  capped,
		"amount": {1.0, 2.0},
	}}
	c := newComparator(source)

	result, err := c.Compare(context.Background(), sampledOpts(),
		model.Field{Name: "total", Table: model.TableRef{Name: "orders"}},
		model.Field{Name: "amount", Table: model.TableRef{Name: "orders"}})
	require.NoError(t, err)
	assert.True(t, result.Sampled)
}

func TestGroupedContributors_HeadFiltersLowDistanceFields(t *testing.T) {
	fields := orderedmap.NewOrderedMap[string, *model.Comparison]()
	for _, fc := range []struct {
		name     string
		distance float64
	}{
		{"quiet", 1}, {"mild", 2}, {"loud", 100},
	} {
		differences := orderedmap.NewOrderedMap[string, float64]()
		differences.Set("mean", fc.distance/100)
		fields.Set(fc.name, &model.Comparison{
			Distance:    fc.distance,
			Differences: differences,
		})
	}

	c := New(nil, stats.Distance{}, breaks.HeadTails{}, nil)
	contributors := c.groupedContributors(fields)

	require.NotEmpty(t, contributors)
	for _, contribution := range contributors {
		assert.Equal(t, "loud", contribution.Field)
	}
}
