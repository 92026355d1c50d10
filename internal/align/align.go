// Package align repairs result-set column order so that downstream feature
// computation sees columns in their expected semantic positions.
package align

import (
	"fmt"
	"iter"

	"github.com/dbsmedya/goinsight/internal/model"
)

// ErrColumnNotFound is returned when an expected column has no match in the
// result set. This means the upstream query result is malformed; it is not
// recovered here.
var ErrColumnNotFound = fmt.Errorf("expected column not found in result set")

// Align returns a lazy row sequence whose values are reordered so that the
// first len(expected) positions hold the values of the named columns, in
// order. When the leading columns already match, rows pass through unchanged.
//
// The sequence is single-pass over rows and safe to abandon early.
func Align(expected []string, cols []model.ColumnMeta, rows [][]any) (iter.Seq[[]any], error) {
	if aligned(expected, cols) {
		return func(yield func([]any) bool) {
			for _, row := range rows {
				if !yield(row) {
					return
				}
			}
		}, nil
	}

	indices := make([]int, len(expected))
	for i, name := range expected {
		idx, err := columnIndex(name, cols)
		if err != nil {
			return nil, err
		}
		indices[i] = idx
	}

	return func(yield func([]any) bool) {
		for _, row := range rows {
			out := make([]any, len(indices))
			for i, idx := range indices {
				out[i] = row[idx]
			}
			if !yield(out) {
				return
			}
		}
	}, nil
}

// aligned reports whether the leading columns already match expected in order.
func aligned(expected []string, cols []model.ColumnMeta) bool {
	if len(cols) < len(expected) {
		return false
	}
	for i, name := range expected {
		if cols[i].Name != name {
			return false
		}
	}
	return true
}

// columnIndex finds the first column with the given name. Ties resolve to the
// first occurrence.
func columnIndex(name string, cols []model.ColumnMeta) (int, error) {
	for i, col := range cols {
		if col.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}
