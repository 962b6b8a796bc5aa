package spatial_test

import (
	"math"
	"testing"

	"geoanalyzer/internal/spatial"
)

func TestSummarizeExtentAndCentroid(t *testing.T) {
	points := []spatial.Point{
		{X: 0, Y: 0}, {X: 10, Y: 20}, {X: 5, Y: 10},
	}

	s := spatial.Summarize(points)
	if s.Count != 3 {
		t.Fatalf("count should be 3, got %d", s.Count)
	}
	if s.Extent.MinX != 0 || s.Extent.MaxX != 10 || s.Extent.MinY != 0 || s.Extent.MaxY != 20 {
		t.Fatalf("unexpected extent: %+v", s.Extent)
	}
	if s.Centroid.X != 5 || s.Centroid.Y != 10 {
		t.Fatalf("unexpected centroid: %+v", s.Centroid)
	}
	if s.Neighbor != nil {
		t.Fatalf("neighbor stats need more than 10 points, got %+v", s.Neighbor)
	}
}

func TestSummarizeDropsInvalidCoordinates(t *testing.T) {
	points := []spatial.Point{
		{X: 1, Y: 1},
		{X: math.NaN(), Y: 5},
		{X: 3, Y: math.Inf(1)},
	}

	s := spatial.Summarize(points)
	if s.Count != 1 {
		t.Fatalf("NaN/Inf coordinates should be dropped, got count %d", s.Count)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := spatial.Summarize(nil)
	if s.Count != 0 || s.Extent != nil || s.Centroid != nil || s.Neighbor != nil {
		t.Fatalf("empty input should yield zero summary, got %+v", s)
	}
}

func TestNeighborStatsClusteredPoints(t *testing.T) {
	// Two tight clusters of 6 points each: 12 points total, mixed
	// nearest-neighbour distances, so the clustering index is defined.
	var points []spatial.Point
	for i := 0; i < 6; i++ {
		points = append(points, spatial.Point{X: float64(i) * 0.5, Y: 0})
	}
	for i := 0; i < 6; i++ {
		points = append(points, spatial.Point{X: 100 + float64(i)*2.0, Y: 0})
	}

	s := spatial.Summarize(points)
	if s.Neighbor == nil {
		t.Fatal("expected neighbor stats for 12 points")
	}
	if s.Neighbor.MeanDistance <= 0 {
		t.Fatalf("mean distance should be positive, got %v", s.Neighbor.MeanDistance)
	}
	if s.Neighbor.Uniform {
		t.Fatal("mixed spacings should not be flagged uniform")
	}
	if s.Neighbor.ClusteringIndex == nil {
		t.Fatal("clustering index should be defined")
	}
	want := s.Neighbor.MeanDistance / s.Neighbor.StdDistance
	if math.Abs(*s.Neighbor.ClusteringIndex-want) > 1e-9 {
		t.Fatalf("clustering index should be mean/std, got %v want %v",
			*s.Neighbor.ClusteringIndex, want)
	}
}

func TestNeighborStatsUniformSpacing(t *testing.T) {
	// 12 collinear points with identical spacing: every nearest-neighbour
	// distance is equal, the std is 0, and the index is undefined.
	var points []spatial.Point
	for i := 0; i < 12; i++ {
		points = append(points, spatial.Point{X: float64(i) * 10, Y: 0})
	}

	s := spatial.Summarize(points)
	if s.Neighbor == nil {
		t.Fatal("expected neighbor stats for 12 points")
	}
	if !s.Neighbor.Uniform {
		t.Fatalf("equal spacing should be flagged uniform, got %+v", s.Neighbor)
	}
	if s.Neighbor.ClusteringIndex != nil {
		t.Fatalf("clustering index must be omitted when std is 0, got %v",
			*s.Neighbor.ClusteringIndex)
	}
	if s.Neighbor.MeanDistance != 10 {
		t.Fatalf("mean nearest distance should be 10, got %v", s.Neighbor.MeanDistance)
	}
}

func TestNeighborStatsThreshold(t *testing.T) {
	var points []spatial.Point
	for i := 0; i < 10; i++ {
		points = append(points, spatial.Point{X: float64(i), Y: float64(i)})
	}

	if s := spatial.Summarize(points); s.Neighbor != nil {
		t.Fatalf("exactly 10 points should not trigger neighbor stats, got %+v", s.Neighbor)
	}
}
