// Package compare ranks which fields and features best explain the
// difference between two analyzable models.
package compare

import (
	"context"
	"math"
	"sort"

	"github.com/elliotchance/orderedmap/v2"
	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/goinsight/internal/breaks"
	"github.com/dbsmedya/goinsight/internal/extract"
	"github.com/dbsmedya/goinsight/internal/logger"
	"github.com/dbsmedya/goinsight/internal/model"
)

// Distancer measures how far apart two feature vectors are.
type Distancer interface {
	Between(a, b *model.FeatureMap) model.Comparison
}

// Comparator extracts two models and compares their feature vectors.
type Comparator struct {
	extractor  *extract.Extractor
	distance   Distancer
	classifier breaks.Classifier
	log        *logger.Logger
}

// New creates a comparator over the given collaborators.
func New(extractor *extract.Extractor, distance Distancer, classifier breaks.Classifier, log *logger.Logger) *Comparator {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Comparator{
		extractor:  extractor,
		distance:   distance,
		classifier: classifier,
		log:        log,
	}
}

// Compare extracts both models under identical options and compares the
// results. The two extractions are independent and run concurrently; their
// outputs are paired in argument order.
func (c *Comparator) Compare(ctx context.Context, opts model.Options, a, b model.Model) (*model.CompareResult, error) {
	var ra, rb *model.ExtractionResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ra, err = c.extractor.Extract(ctx, opts, a)
		return err
	})
	g.Go(func() error {
		var err error
		rb, err = c.extractor.Extract(ctx, opts, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &model.CompareResult{
		A:       a,
		B:       b,
		Sampled: ra.Sampled || rb.Sampled,
	}

	if ra.Grouped() && rb.Grouped() {
		c.compareGrouped(result, ra, rb)
	} else {
		c.compareLeaf(result, ra, rb)
	}
	return result, nil
}

// compareGrouped pairs constituents by keys present on both sides; keys
// missing on either side are dropped, not erred.
func (c *Comparator) compareGrouped(result *model.CompareResult, ra, rb *model.ExtractionResult) {
	fields := orderedmap.NewOrderedMap[string, *model.Comparison]()
	for el := ra.Constituents.Front(); el != nil; el = el.Next() {
		other, ok := rb.Constituents.Get(el.Key)
		if !ok {
			continue
		}
		cmp := c.distance.Between(el.Value.Features, other.Features)
		fields.Set(el.Key, &cmp)
		if cmp.Significant {
			result.Significant = true
		}
	}
	result.Fields = fields
	result.Contributors = c.groupedContributors(fields)
}

func (c *Comparator) compareLeaf(result *model.CompareResult, ra, rb *model.ExtractionResult) {
	cmp := c.distance.Between(ra.Features, rb.Features)
	result.Leaf = &cmp
	result.Significant = cmp.Significant
	result.Contributors = leafContributors(&cmp)
}

// groupedContributors selects the significant contributors hierarchically:
// first the head group of fields by distance, then within those fields the
// head group of features by contribution, where a feature's contribution is
// its difference scaled by sqrt of the field's distance.
func (c *Comparator) groupedContributors(fields *orderedmap.OrderedMap[string, *model.Comparison]) []model.Contribution {
	keys := fields.Keys()
	distances := make([]float64, 0, len(keys))
	for _, key := range keys {
		cmp, _ := fields.Get(key)
		distances = append(distances, cmp.Distance)
	}

	var candidates []model.Contribution
	for _, i := range c.classifier.Head(distances) {
		cmp, _ := fields.Get(keys[i])
		scale := math.Sqrt(cmp.Distance)
		for el := cmp.Differences.Front(); el != nil; el = el.Next() {
			candidates = append(candidates, model.Contribution{
				Feature: el.Key,
				Field:   keys[i],
				Value:   scale * el.Value,
			})
		}
	}

	scores := make([]float64, len(candidates))
	for i, cand := range candidates {
		scores[i] = cand.Value
	}

	head := make([]model.Contribution, 0, len(candidates))
	for _, i := range c.classifier.Head(scores) {
		head = append(head, candidates[i])
	}
	sort.SliceStable(head, func(i, j int) bool {
		return head[i].Value > head[j].Value
	})
	return head
}

// leafContributors has no field level to filter on: every per-feature
// difference becomes a contribution, in the order the distance collaborator
// produced them.
func leafContributors(cmp *model.Comparison) []model.Contribution {
	if cmp.Differences == nil {
		return nil
	}
	contributors := make([]model.Contribution, 0, cmp.Differences.Len())
	for el := cmp.Differences.Front(); el != nil; el = el.Next() {
		contributors = append(contributors, model.Contribution{
			Feature: el.Key,
			Value:   el.Value,
		})
	}
	return contributors
}
