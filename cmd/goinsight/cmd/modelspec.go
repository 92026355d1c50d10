package cmd

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/goinsight/internal/config"
	"github.com/dbsmedya/goinsight/internal/model"
)

// parseModelSpec resolves a CLI model spec into a model value.
//
// Accepted forms:
//
//	field:<table>.<column>
//	table:<table>
//	card:<name>       (defined under cards: in the config)
//	segment:<name>    (defined under segments: in the config)
func parseModelSpec(cfg *config.Config, spec string) (model.Model, error) {
	kind, rest, found := strings.Cut(spec, ":")
	if !found {
		return nil, fmt.Errorf("invalid model spec %q (want kind:name)", spec)
	}

	switch kind {
	case "field":
		table, column, found := strings.Cut(rest, ".")
		if !found || table == "" || column == "" {
			return nil, fmt.Errorf("invalid field spec %q (want field:table.column)", spec)
		}
		return model.Field{
			Name:  column,
			Table: model.TableRef{Name: table},
		}, nil

	case "table":
		if rest == "" {
			return nil, fmt.Errorf("invalid table spec %q (want table:name)", spec)
		}
		return model.Table{Name: rest}, nil

	case "card":
		card, err := cfg.GetCard(rest)
		if err != nil {
			return nil, err
		}
		return model.Card{
			Name:  rest,
			Table: model.TableRef{Name: card.Table},
			Query: card.Query,
		}, nil

	case "segment":
		segment, err := cfg.GetSegment(rest)
		if err != nil {
			return nil, err
		}
		return model.Segment{
			Name:   rest,
			Table:  model.TableRef{Name: segment.Table},
			Filter: segment.Filter,
		}, nil
	}

	return nil, fmt.Errorf("unknown model kind %q (want field, table, card or segment)", kind)
}
