package report

import "math"

// ProgressPercent returns how much of a budget ceiling is spent, rounded to
// two decimals and clamped to [0, 100]. A zero ceiling reports 100 when
// anything was spent and 0 otherwise, so callers never divide by zero.
// The remaining amount is deliberately left unclamped by the summaries; the
// clamp applies to the progress bar only.
func ProgressPercent(amount, totalSpend float64) float64 {
	if amount == 0 {
		if totalSpend > 0 {
			return 100
		}
		return 0
	}
	pct := math.Round(totalSpend/amount*100*100) / 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
