// Package spatial computes extents, centroid and nearest-neighbour clustering
// statistics over planar point coordinates.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Point is one planar coordinate pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Extent is the axis-aligned bounding box of a point set.
type Extent struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// NeighborStats summarizes nearest-neighbour distances. ClusteringIndex is
// mean/std of those distances; when the std is zero the index is undefined
// and Uniform is set instead of dividing by zero.
type NeighborStats struct {
	MeanDistance    float64  `json:"mean_distance"`
	StdDistance     float64  `json:"std_distance"`
	ClusteringIndex *float64 `json:"clustering_index,omitempty"`
	Uniform         bool     `json:"uniform,omitempty"`
}

// Summary holds the spatial statistics of a point set.
type Summary struct {
	Count    int            `json:"count"`
	Extent   *Extent        `json:"extent,omitempty"`
	Centroid *Point         `json:"centroid,omitempty"`
	Neighbor *NeighborStats `json:"nearest_neighbor,omitempty"`
}

// minNeighborCount is the sample size above which nearest-neighbour
// statistics are computed.
const minNeighborCount = 10

// Summarize drops NaN coordinates and computes extent and centroid, plus
// nearest-neighbour statistics when more than ten valid points remain. An
// empty input yields a zero-count summary, never an error.
func Summarize(points []Point) Summary {
	valid := make([]Point, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return Summary{}
	}

	ext := Extent{MinX: valid[0].X, MaxX: valid[0].X, MinY: valid[0].Y, MaxY: valid[0].Y}
	sumX, sumY := 0.0, 0.0
	for _, p := range valid {
		sumX += p.X
		sumY += p.Y
		ext.MinX = math.Min(ext.MinX, p.X)
		ext.MaxX = math.Max(ext.MaxX, p.X)
		ext.MinY = math.Min(ext.MinY, p.Y)
		ext.MaxY = math.Max(ext.MaxY, p.Y)
	}

	n := float64(len(valid))
	summary := Summary{
		Count:    len(valid),
		Extent:   &ext,
		Centroid: &Point{X: sumX / n, Y: sumY / n},
	}

	if len(valid) > minNeighborCount {
		summary.Neighbor = neighborStats(valid)
	}
	return summary
}

// neighborStats runs an exact nearest-neighbour search: for each point the
// minimum distance to any other point.
func neighborStats(points []Point) *NeighborStats {
	distances := make([]float64, len(points))
	for i, p := range points {
		best := math.Inf(1)
		for j, q := range points {
			if i == j {
				continue
			}
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d < best {
				best = d
			}
		}
		distances[i] = best
	}

	mean := stat.Mean(distances, nil)
	std := stat.StdDev(distances, nil)

	ns := &NeighborStats{MeanDistance: mean, StdDistance: std}
	if std == 0 {
		ns.Uniform = true
		return ns
	}
	index := mean / std
	ns.ClusteringIndex = &index
	return ns
}
