//go:build cv

package vision

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// Canny hysteresis thresholds tuned for rock-face photographs.
const (
	cannyLow  = 50
	cannyHigh = 150
)

// CVAnalyzer is the OpenCV-backed analyzer. On top of the intensity
// statistics it computes edge density and a count of closed external
// contours.
type CVAnalyzer struct{}

// Name identifies the analyzer in capability listings.
func (CVAnalyzer) Name() string { return "opencv" }

// EdgeDetection reports that this analyzer computes edge features.
func (CVAnalyzer) EdgeDetection() bool { return true }

// Analyze reads, grayscales and summarizes the image, then runs Canny edge
// detection and an external contour scan.
func (CVAnalyzer) Analyze(path string) Report {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return failed("opencv", fmt.Sprintf("cannot open image: %s", path))
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	if mat.Channels() == 3 {
		gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	} else {
		mat.CopyTo(&gray)
	}

	features := grayFeatures(gray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, cannyLow, cannyHigh)

	density := float64(gocv.CountNonZero(edges)) / float64(edges.Rows()*edges.Cols())
	features.EdgeDensity = &density

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	count := contours.Size()
	features.ContourCount = &count

	return Report{
		Status:   StatusOK,
		Provider: "opencv",
		Dimensions: &Dimensions{
			Width:  mat.Cols(),
			Height: mat.Rows(),
		},
		Channels: mat.Channels(),
		DataType: "uint8",
		Features: features,
	}
}

func grayFeatures(gray gocv.Mat) *Features {
	total := gray.Rows() * gray.Cols()
	if total == 0 {
		return &Features{}
	}

	var sum, sumSq float64
	min, max := 255.0, 0.0
	for y := 0; y < gray.Rows(); y++ {
		for x := 0; x < gray.Cols(); x++ {
			v := float64(gray.GetUCharAt(y, x))
			sum += v
			sumSq += v * v
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}

	n := float64(total)
	mean := sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}

	return &Features{
		MeanIntensity: mean,
		StdIntensity:  math.Sqrt(variance),
		MinIntensity:  min,
		MaxIntensity:  max,
	}
}
