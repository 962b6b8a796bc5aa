package geodata

import (
	"encoding/json"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RMRClass is one tier of the rock-mass-rating table.
type RMRClass struct {
	Threshold float64
	Label     string
	Color     string
}

// rmrClasses is the fixed classification table, evaluated high to low. Ties
// go to the higher bucket (>= threshold).
var rmrClasses = []RMRClass{
	{80, "Muy Buena", "#00ff00"},
	{60, "Buena", "#80ff00"},
	{40, "Regular", "#ffff00"},
	{20, "Mala", "#ff8000"},
	{0, "Muy Mala", "#ff0000"},
}

// englishLabels maps the display classes onto the labels used by the
// statistics distribution.
var englishLabels = map[string]string{
	"Muy Buena": "Very Good",
	"Buena":     "Good",
	"Regular":   "Fair",
	"Mala":      "Poor",
	"Muy Mala":  "Very Poor",
}

// ClassifyRMR buckets a rating into its class. Classification is a pure
// function of the value alone.
func ClassifyRMR(v float64) RMRClass {
	for _, c := range rmrClasses[:len(rmrClasses)-1] {
		if v >= c.Threshold {
			return c
		}
	}
	return rmrClasses[len(rmrClasses)-1]
}

// RMRPoint is a record enriched for scatter-map rendering. Original columns
// are preserved; color, class and plot coordinates are added.
type RMRPoint struct {
	Record   Record
	Color    string
	Class    string
	X        float64
	Y        float64
	RMRValue float64
}

// MarshalJSON flattens the point into the original record shape with the
// enrichment fields added, matching the wire contract.
func (p RMRPoint) MarshalJSON() ([]byte, error) {
	m := p.Record.Fields()
	m["color"] = p.Color
	m["class"] = p.Class
	m["x"] = p.X
	m["y"] = p.Y
	m["rmr_value"] = p.RMRValue
	return json.Marshal(m)
}

// AnalyzeRMR filters the record set and classifies each surviving record.
// Missing fields default to zero rather than failing.
func AnalyzeRMR(records []Record, spec FilterSpec) []RMRPoint {
	filtered := Filter(records, spec)
	points := make([]RMRPoint, 0, len(filtered))
	for _, rec := range filtered {
		v := deref(rec.RMR)
		class := ClassifyRMR(v)
		points = append(points, RMRPoint{
			Record:   rec,
			Color:    class.Color,
			Class:    class.Label,
			X:        deref(rec.X),
			Y:        deref(rec.Y),
			RMRValue: v,
		})
	}
	return points
}

// RMRStatistics summarizes the RMR column of a record set.
type RMRStatistics struct {
	Count        int                `json:"count"`
	Mean         float64            `json:"mean"`
	Std          float64            `json:"std"`
	Min          float64            `json:"min"`
	Max          float64            `json:"max"`
	Percentiles  map[string]float64 `json:"percentiles"`
	Distribution map[string]int     `json:"classification_distribution"`
}

// CalculateRMRStatistics computes descriptive statistics and the per-class
// distribution over records that carry an RMR value. Returns nil when none do.
func CalculateRMRStatistics(records []Record) *RMRStatistics {
	values := make([]float64, 0, len(records))
	dist := make(map[string]int)
	for i := range records {
		if records[i].RMR == nil {
			continue
		}
		v := *records[i].RMR
		values = append(values, v)
		dist[englishLabels[ClassifyRMR(v).Label]]++
	}
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	std := 0.0
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	return &RMRStatistics{
		Count: len(values),
		Mean:  stat.Mean(values, nil),
		Std:   std,
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Percentiles: map[string]float64{
			"25": stat.Quantile(0.25, stat.Empirical, sorted, nil),
			"50": stat.Quantile(0.50, stat.Empirical, sorted, nil),
			"75": stat.Quantile(0.75, stat.Empirical, sorted, nil),
		},
		Distribution: dist,
	}
}
