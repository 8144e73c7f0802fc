package imp

import "math"

// CDFDistance returns the largest absolute difference between the CDFs of
// two histograms. It is 0 for identical distributions and at most 1.
func CDFDistance(a, b Histogram) float64 {
	ca, cb := a.CDF(), b.CDF()
	var d float64
	for i := range ca {
		d = math.Max(d, math.Abs(ca[i]-cb[i]))
	}
	return d
}
