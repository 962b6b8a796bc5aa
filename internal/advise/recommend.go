// Package advise derives short advisory strings from geological survey data.
package advise

import (
	"gonum.org/v1/gonum/stat"

	"geoanalyzer/internal/geodata"
)

// rmrAdvice pairs each rating tier with its support recommendation. Evaluated
// high to low against the mean RMR of the set.
var rmrAdvice = []struct {
	threshold float64
	text      string
}{
	{80, "Excellent rock conditions: minimal support required"},
	{60, "Good rock conditions: spot bolting recommended"},
	{40, "Fair rock conditions: systematic bolting and shotcrete recommended"},
	{20, "Poor rock conditions: heavy support with steel sets required"},
	{0, "Very poor rock conditions: forepoling and immediate support required"},
}

const (
	variabilityWarning = "High RMR variability detected: consider zone-specific support design"
	wedgeSuggestion    = "Three or more fracture families identified: wedge stability analysis recommended"
	elongationNote     = "Elongated spatial distribution detected: consider sampling along the minor axis"
)

const (
	variabilityStdThreshold = 20.0
	wedgeFamilyCount        = 3
	elongationMinPoints     = 5
	elongationRatio         = 3.0
)

// Recommendations evaluates every rule independently and concatenates the
// resulting advisories in a fixed order. An empty set yields an empty list.
func Recommendations(records []geodata.Record) []string {
	out := []string{}
	if len(records) == 0 {
		return out
	}

	if rmr := rmrValues(records); len(rmr) > 0 {
		mean := stat.Mean(rmr, nil)
		for _, tier := range rmrAdvice {
			if mean >= tier.threshold {
				out = append(out, tier.text)
				break
			}
		}
		if len(rmr) > 1 && stat.StdDev(rmr, nil) > variabilityStdThreshold {
			out = append(out, variabilityWarning)
		}
	}

	if countFamilies(records) >= wedgeFamilyCount {
		out = append(out, wedgeSuggestion)
	}

	if elongated(records) {
		out = append(out, elongationNote)
	}

	return out
}

func rmrValues(records []geodata.Record) []float64 {
	var values []float64
	for i := range records {
		if records[i].RMR != nil {
			values = append(values, *records[i].RMR)
		}
	}
	return values
}

func countFamilies(records []geodata.Record) int {
	families := make(map[string]bool)
	for i := range records {
		if records[i].Familia != nil {
			families[*records[i].Familia] = true
		}
	}
	return len(families)
}

// elongated reports whether the coordinate cloud is markedly stretched along
// one axis: more than five valid rows and the larger axis range exceeding
// three times the smaller. A zero smaller range with a nonzero larger range
// counts as elongated (the ratio is unbounded); two degenerate ranges do not.
func elongated(records []geodata.Record) bool {
	var xs, ys []float64
	for i := range records {
		if records[i].X != nil && records[i].Y != nil {
			xs = append(xs, *records[i].X)
			ys = append(ys, *records[i].Y)
		}
	}
	if len(xs) <= elongationMinPoints {
		return false
	}

	rangeX := spread(xs)
	rangeY := spread(ys)
	larger, smaller := rangeX, rangeY
	if rangeY > rangeX {
		larger, smaller = rangeY, rangeX
	}
	if smaller == 0 {
		return larger > 0
	}
	return larger/smaller > elongationRatio
}

func spread(values []float64) float64 {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
