package render

import (
	"math"

	"funcplot/plot/sampler"
)

// PickRadius is the pixel distance a click must be strictly within to select
// a sample.
const PickRadius = 15

// Pick returns the index of the sample nearest to the canvas pixel (px, py),
// or -1 when no sample is closer than PickRadius. Ties go to the earlier
// sample.
func Pick(set *sampler.SampleSet, vp Viewport, px, py float64) int {
	if set == nil {
		return -1
	}
	best := -1
	bestDist := math.Inf(1)
	for i, s := range set.Samples {
		d := math.Hypot(vp.MapX(s.X)-px, vp.MapY(s.Y)-py)
		if d < bestDist && d < PickRadius {
			best = i
			bestDist = d
		}
	}
	return best
}
