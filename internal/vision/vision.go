// Package vision extracts basic intensity and edge features from site
// photographs. Two analyzers implement the same interface: a basic one built
// on the standard image decoders, always available, and an OpenCV-backed one
// compiled in with the "cv" build tag. The active analyzer is selected once
// at startup; handlers never branch on capability themselves.
package vision

// StatusOK and StatusFailed are the two terminal report states. A decode
// failure is reported in the return value, never raised past the boundary.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Dimensions holds pixel dimensions of the analyzed image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Features holds intensity statistics over the grayscale-reduced image.
// EdgeDensity and ContourCount are only present when the analyzer has edge
// detection; their absence is capability degradation, not an error.
type Features struct {
	MeanIntensity float64  `json:"mean_intensity"`
	StdIntensity  float64  `json:"std_intensity"`
	MinIntensity  float64  `json:"min_intensity"`
	MaxIntensity  float64  `json:"max_intensity"`
	EdgeDensity   *float64 `json:"edge_density,omitempty"`
	ContourCount  *int     `json:"contour_count,omitempty"`
}

// Report is the result of analyzing one image.
type Report struct {
	Status     string      `json:"status"`
	Provider   string      `json:"provider"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	Channels   int         `json:"channels,omitempty"`
	DataType   string      `json:"data_type,omitempty"`
	Features   *Features   `json:"features,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Analyzer computes image features. Implementations are stateless and safe
// for concurrent use.
type Analyzer interface {
	Name() string
	EdgeDetection() bool
	Analyze(path string) Report
}

func failed(provider, reason string) Report {
	return Report{Status: StatusFailed, Provider: provider, Error: reason}
}
