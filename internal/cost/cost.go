// Package cost interprets an analysis resource budget into concrete query
// limits and sampling decisions.
package cost

import "github.com/dbsmedya/goinsight/internal/model"

// SampleCap is the row ceiling applied when the budget forbids a full scan.
const SampleCap = 10000

// FullScan reports whether the query budget permits reading a table in full.
// An unset budget fails open: cost control degrades, correctness does not.
func FullScan(mc model.MaxCost) bool {
	return mc.Query == model.QueryUnset || mc.Query >= model.QueryFullScan
}

// QueryOpts derives the concrete query limits for the given options. When a
// full scan is not permitted the row cap is SampleCap; otherwise no limit.
func QueryOpts(opts model.Options) model.QueryOpts {
	if FullScan(opts.MaxCost) {
		return model.QueryOpts{}
	}
	return model.QueryOpts{Limit: SampleCap}
}

// IsSampled reports whether a result of rowCount rows was probably truncated
// by the sampling cap.
//
// This is a heuristic, not an exact truncation flag: a restricted budget plus
// exactly SampleCap rows is read as "truncated", anything under the cap as
// "complete", even though a table of exactly SampleCap rows is
// indistinguishable from a capped one. Downstream consumers expect this
// approximation; do not tighten it here.
func IsSampled(opts model.Options, rowCount int) bool {
	return !FullScan(opts.MaxCost) && rowCount == SampleCap
}
