package model

// ColumnSource tags the semantic role a result column played in the query
// that produced it.
type ColumnSource string

const (
	// SourceBreakout marks a grouping-key column.
	SourceBreakout ColumnSource = "breakout"
	// SourceAggregation marks a computed aggregate column.
	SourceAggregation ColumnSource = "aggregation"
	// SourceFields marks a plain selected column.
	SourceFields ColumnSource = "fields"
)

// ColumnMeta describes one column of a Dataset.
type ColumnMeta struct {
	Name     string
	BaseType string
	Source   ColumnSource
}

// Dataset is an ordered result set: rows of scalars plus per-column metadata.
type Dataset struct {
	Cols []ColumnMeta
	Rows [][]any
}

// RowCount returns the number of rows in the dataset.
func (d *Dataset) RowCount() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// Column returns the values of the column at index i, one per row.
func (d *Dataset) Column(i int) []any {
	values := make([]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		values = append(values, row[i])
	}
	return values
}
