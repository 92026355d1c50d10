// Package retrieval fetches raw rows, datasets and row counts for analyzable
// models from the MySQL source. It is the data-retrieval collaborator behind
// the extraction pipeline; query failures propagate unmodified, retries
// belong to the connection layer.
package retrieval

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"github.com/dbsmedya/goinsight/internal/logger"
	"github.com/dbsmedya/goinsight/internal/model"
)

// SQLSource retrieves model data through a database/sql connection.
type SQLSource struct {
	db  *sql.DB
	log *logger.Logger
}

// NewSQLSource creates a source over the given connection.
func NewSQLSource(db *sql.DB, log *logger.Logger) *SQLSource {
	if log == nil {
		log = logger.NewDefault()
	}
	return &SQLSource{db: db, log: log}
}

// FieldValues fetches the values of a single column, honoring the row limit.
func (s *SQLSource) FieldValues(ctx context.Context, f model.Field, qo model.QueryOpts) ([]any, error) {
	col, err := quoteIdentifierSafe(f.Name)
	if err != nil {
		return nil, err
	}
	table, err := quoteIdentifierSafe(f.Table.Name)
	if err != nil {
		return nil, err
	}

	query := withLimit(fmt.Sprintf("SELECT %s FROM %s", col, table), qo)
	s.log.WithField(f.Name).Debugf("fetching field values: %s", query)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("field values for %s: %w", f, err)
	}
	defer rows.Close()

	var values []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan field value: %w", err)
		}
		values = append(values, normalizeValue(v))
	}
	return values, rows.Err()
}

// TableValues fetches a dataset over all columns of a table, honoring the
// row limit.
func (s *SQLSource) TableValues(ctx context.Context, t model.Table, qo model.QueryOpts) (*model.Dataset, error) {
	table, err := quoteIdentifierSafe(t.Name)
	if err != nil {
		return nil, err
	}

	query := withLimit(fmt.Sprintf("SELECT * FROM %s", table), qo)
	return s.queryDataset(ctx, query, func(string) model.ColumnSource {
		return model.SourceFields
	})
}

// CardValues runs a card's saved query verbatim. No row limit is applied:
// cards are not sampled. Column roles are inferred from column names since a
// raw query carries no role metadata.
func (s *SQLSource) CardValues(ctx context.Context, c model.Card) (*model.Dataset, error) {
	s.log.WithModel(c.Kind(), c.Name).Debug("running card query")
	return s.queryDataset(ctx, c.Query, inferColumnSource)
}

// SegmentValues fetches a dataset over a table restricted by the segment's
// stored filter, honoring the row limit.
func (s *SQLSource) SegmentValues(ctx context.Context, seg model.Segment, qo model.QueryOpts) (*model.Dataset, error) {
	table, err := quoteIdentifierSafe(seg.Table.Name)
	if err != nil {
		return nil, err
	}

	query := withLimit(fmt.Sprintf("SELECT * FROM %s WHERE %s", table, seg.Filter), qo)
	return s.queryDataset(ctx, query, func(string) model.ColumnSource {
		return model.SourceFields
	})
}

// TableRowCount returns the total row count of a table.
func (s *SQLSource) TableRowCount(ctx context.Context, t model.Table) (int64, error) {
	table, err := quoteIdentifierSafe(t.Name)
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("row count for %s: %w", t.Name, err)
	}
	return count, nil
}

func (s *SQLSource) queryDataset(ctx context.Context, query string, source func(string) model.ColumnSource) (*model.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	ds := &model.Dataset{Cols: make([]model.ColumnMeta, len(names))}
	for i, name := range names {
		ds.Cols[i] = model.ColumnMeta{Name: name, Source: source(name)}
	}
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			ds.Cols[i].BaseType = ct.DatabaseTypeName()
		}
	}

	for rows.Next() {
		row := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range row {
			ptrs[i] = &row[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i := range row {
			row[i] = normalizeValue(row[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, rows.Err()
}

// withLimit appends a LIMIT clause when the query opts carry a row cap.
func withLimit(query string, qo model.QueryOpts) string {
	if qo.Limit > 0 {
		return fmt.Sprintf("%s LIMIT %d", query, qo.Limit)
	}
	return query
}

// aggregateNamePattern matches column names that look like computed
// aggregates (count, sum_total, avg(price), ...).
var aggregateNamePattern = regexp.MustCompile(`(?i)^(count|sum|avg|min|max|total|stddev)([_(].*)?$`)

// inferColumnSource guesses a result column's semantic role from its name.
// Raw SQL results carry no breakout/aggregation metadata, so a name-based
// heuristic stands in.
func inferColumnSource(name string) model.ColumnSource {
	if aggregateNamePattern.MatchString(name) {
		return model.SourceAggregation
	}
	return model.SourceBreakout
}

// normalizeValue converts driver-specific scan results to plain scalars.
// MySQL returns []byte for most textual and decimal columns; numeric-looking
// bytes become float64, the rest become string.
func normalizeValue(v any) any {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
