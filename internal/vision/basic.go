package vision

import (
	"fmt"
	"image"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// BasicAnalyzer decodes images with the standard library and computes
// grayscale intensity statistics. It has no edge-detection capability, so
// edge density and contour count are omitted from its reports.
type BasicAnalyzer struct{}

// Name identifies the analyzer in capability listings.
func (BasicAnalyzer) Name() string { return "basic" }

// EdgeDetection reports that this analyzer cannot compute edge features.
func (BasicAnalyzer) EdgeDetection() bool { return false }

// Analyze opens and decodes the image, then reduces it to 8-bit grayscale
// and summarizes the intensities.
func (BasicAnalyzer) Analyze(path string) Report {
	f, err := os.Open(path)
	if err != nil {
		return failed("basic", fmt.Sprintf("cannot open image: %v", err))
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return failed("basic", fmt.Sprintf("cannot decode image: %v", err))
	}

	bounds := img.Bounds()
	report := Report{
		Status:   StatusOK,
		Provider: "basic",
		Dimensions: &Dimensions{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		},
		Channels: channelCount(img),
		DataType: dataType(img),
		Features: intensityFeatures(img),
	}
	return report
}

func intensityFeatures(img image.Image) *Features {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return &Features{}
	}

	var sum, sumSq float64
	min, max := math.MaxFloat64, -math.MaxFloat64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luma on 8-bit components.
			gray := (299*float64(r>>8) + 587*float64(g>>8) + 114*float64(b>>8)) / 1000
			sum += gray
			sumSq += gray * gray
			min = math.Min(min, gray)
			max = math.Max(max, gray)
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

func channelCount(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.CMYK:
		return 4
	default:
		return 4
	}
}

func dataType(img image.Image) string {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return "uint16"
	default:
		return "uint8"
	}
}
