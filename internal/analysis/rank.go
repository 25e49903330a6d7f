package analysis

import "sort"

// RankByExpectedRevenue returns a copy of points sorted descending by
// expected single-period revenue. Ties keep grid order.
func RankByExpectedRevenue(points []CurvePoint) []CurvePoint {
	out := append([]CurvePoint(nil), points...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpectedRevenue > out[j].ExpectedRevenue
	})
	return out
}
