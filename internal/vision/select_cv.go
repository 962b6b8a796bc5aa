//go:build cv

package vision

// Detect returns the analyzer available in this build. With the cv build tag
// the OpenCV-backed analyzer takes over, adding edge features.
func Detect() Analyzer {
	return CVAnalyzer{}
}
