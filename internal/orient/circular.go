// Package orient computes circular statistics over azimuth-like angular data
// and prepares stereonet series from orientation measurements.
package orient

import (
	"math"
	"sort"
)

// CircularMean returns the mean direction of the samples in degrees,
// normalized to [0,360). Angles may be any real value. NaN for an empty set.
func CircularMean(degrees []float64) float64 {
	if len(degrees) == 0 {
		return math.NaN()
	}
	sinSum, cosSum := 0.0, 0.0
	for _, d := range degrees {
		r := d * math.Pi / 180
		sinSum += math.Sin(r)
		cosSum += math.Cos(r)
	}
	mean := math.Atan2(sinSum/float64(len(degrees)), cosSum/float64(len(degrees))) * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}
	return math.Mod(mean, 360)
}

// ResultantLength returns R, the magnitude of the mean resultant vector, in
// [0,1]. 1 means perfectly aligned directions, 0 uniformly scattered.
func ResultantLength(degrees []float64) float64 {
	if len(degrees) == 0 {
		return 0
	}
	sinSum, cosSum := 0.0, 0.0
	for _, d := range degrees {
		r := d * math.Pi / 180
		sinSum += math.Sin(r)
		cosSum += math.Cos(r)
	}
	n := float64(len(degrees))
	return math.Sqrt(math.Pow(sinSum/n, 2) + math.Pow(cosSum/n, 2))
}

// CircularDispersion is 1 - R.
func CircularDispersion(degrees []float64) float64 {
	return 1 - ResultantLength(degrees)
}

// JointSet is one dominant direction bin.
type JointSet struct {
	DirectionDeg float64 `json:"direction"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
}

const jointSetBinWidth = 30.0

// IdentifyJointSets bins directions into fixed 30-degree sectors over
// [0,360) and reports every bin holding more than 10% of the samples, sorted
// descending by count. Each entry carries the bin-center direction.
func IdentifyJointSets(degrees []float64) []JointSet {
	if len(degrees) == 0 {
		return []JointSet{}
	}

	bins := make(map[int]int)
	for _, d := range degrees {
		m := math.Mod(d, 360)
		if m < 0 {
			m += 360
		}
		bins[int(m/jointSetBinWidth)]++
	}

	total := float64(len(degrees))
	sets := make([]JointSet, 0, len(bins))
	for bin, count := range bins {
		pct := float64(count) / total * 100
		if pct <= 10 {
			continue
		}
		sets = append(sets, JointSet{
			DirectionDeg: float64(bin)*jointSetBinWidth + jointSetBinWidth/2,
			Count:        count,
			Percentage:   pct,
		})
	}

	sort.Slice(sets, func(i, j int) bool {
		if sets[i].Count != sets[j].Count {
			return sets[i].Count > sets[j].Count
		}
		return sets[i].DirectionDeg < sets[j].DirectionDeg
	})
	return sets
}
