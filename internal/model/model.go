// Package model contains shared types used across multiple packages to avoid import cycles.
package model

import "fmt"

// TableRef identifies a table that owns a field or backs a card/segment.
type TableRef struct {
	ID   int64
	Name string
}

func (t TableRef) String() string {
	return t.Name
}

// CardRef identifies a saved question.
type CardRef struct {
	ID   int64
	Name string
}

func (c CardRef) String() string {
	return c.Name
}

// SegmentRef identifies a named filtered subset of a table.
type SegmentRef struct {
	ID   int64
	Name string
}

func (s SegmentRef) String() string {
	return s.Name
}

// Model is the closed set of analyzable model variants. Exactly four types
// implement it: Field, Table, Card and Segment. The extractor dispatches on
// the concrete type, one handler per variant.
type Model interface {
	// Kind returns the variant name for logging and CLI output.
	Kind() string
}

// Field is a single column of a table.
type Field struct {
	ID       int64
	Name     string
	BaseType string
	Table    TableRef
}

func (f Field) Kind() string { return "field" }

func (f Field) String() string {
	return fmt.Sprintf("%s.%s", f.Table.Name, f.Name)
}

// Table is a whole database table.
type Table struct {
	ID         int64
	Name       string
	DatabaseID int64
}

func (t Table) Kind() string { return "table" }

func (t Table) String() string { return t.Name }

// Ref returns the table's reference form for use in feature maps.
func (t Table) Ref() TableRef {
	return TableRef{ID: t.ID, Name: t.Name}
}

// Card is a saved question: a stored query whose result set is analyzed as-is.
type Card struct {
	ID         int64
	Name       string
	DatabaseID int64
	Table      TableRef
	Query      string
}

func (c Card) Kind() string { return "card" }

func (c Card) String() string { return c.Name }

// Ref returns the card's reference form for use in feature maps.
func (c Card) Ref() CardRef {
	return CardRef{ID: c.ID, Name: c.Name}
}

// Segment is a table restricted by a stored filter definition.
type Segment struct {
	ID     int64
	Name   string
	Table  TableRef
	Filter string
}

func (s Segment) Kind() string { return "segment" }

func (s Segment) String() string { return s.Name }

// Ref returns the segment's reference form for use in feature maps.
func (s Segment) Ref() SegmentRef {
	return SegmentRef{ID: s.ID, Name: s.Name}
}
