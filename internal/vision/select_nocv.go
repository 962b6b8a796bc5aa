//go:build !cv

package vision

// Detect returns the analyzer available in this build. Without the cv build
// tag only the basic analyzer is compiled in.
func Detect() Analyzer {
	return BasicAnalyzer{}
}
