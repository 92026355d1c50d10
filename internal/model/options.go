package model

import "fmt"

// ComputeBudget bounds how much computation feature extraction may spend.
type ComputeBudget int

const (
	ComputeUnset ComputeBudget = iota
	ComputeLinear
	ComputeUnbounded
	ComputeYolo
)

// QueryBudget bounds how much load extraction may put on the source database.
type QueryBudget int

const (
	QueryUnset QueryBudget = iota
	QueryDontTouch
	QuerySample
	QueryFullScan
	QueryJoins
)

// MaxCost is the resource budget for an analysis run. Both axes are ordered
// enums; they are only ever interpreted through the cost package.
type MaxCost struct {
	Computation ComputeBudget
	Query       QueryBudget
}

// Options is the immutable configuration bundle threaded through extraction
// and comparison. Query carries a card's underlying query when series
// features are computed for it.
type Options struct {
	MaxCost MaxCost
	Query   string
}

// QueryOpts are the concrete limits derived from a budget by the cost policy.
// A zero Limit means no row cap.
type QueryOpts struct {
	Limit int
}

// ParseComputeBudget converts a config string to a ComputeBudget.
func ParseComputeBudget(s string) (ComputeBudget, error) {
	switch s {
	case "linear":
		return ComputeLinear, nil
	case "unbounded":
		return ComputeUnbounded, nil
	case "yolo":
		return ComputeYolo, nil
	case "":
		return ComputeUnset, nil
	}
	return ComputeUnset, fmt.Errorf("unknown computation budget %q", s)
}

// ParseQueryBudget converts a config string to a QueryBudget.
func ParseQueryBudget(s string) (QueryBudget, error) {
	switch s {
	case "dont-touch":
		return QueryDontTouch, nil
	case "sample":
		return QuerySample, nil
	case "full-scan":
		return QueryFullScan, nil
	case "joins":
		return QueryJoins, nil
	case "":
		return QueryUnset, nil
	}
	return QueryUnset, fmt.Errorf("unknown query budget %q", s)
}
