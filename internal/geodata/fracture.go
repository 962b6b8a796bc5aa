package geodata

import (
	"encoding/json"
	"sort"
)

// familyPalette is the fixed cyclic palette for fracture families. The Nth
// distinct family seen gets the (N mod 6)-th color.
var familyPalette = []string{
	"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff", "#00ffff",
}

// UnknownFamily is the label substituted for records without a family.
const UnknownFamily = "Unknown"

// FracturePoint is a record enriched for structural-geology rendering.
type FracturePoint struct {
	Record       Record
	Color        string
	Family       string
	Dip          float64
	DipDirection float64
	X            float64
	Y            float64
}

// MarshalJSON flattens the point into the original record shape with the
// enrichment fields added.
func (p FracturePoint) MarshalJSON() ([]byte, error) {
	m := p.Record.Fields()
	m["color"] = p.Color
	m["family"] = p.Family
	m["dip"] = p.Dip
	m["dip_direction"] = p.DipDirection
	m["x"] = p.X
	m["y"] = p.Y
	return json.Marshal(m)
}

// AnalyzeFractures filters the record set and assigns each record a stable
// family color in first-seen order. Color assignment is deterministic for a
// fixed input order.
func AnalyzeFractures(records []Record, spec FilterSpec) []FracturePoint {
	filtered := Filter(records, spec)
	colors := make(map[string]string)

	points := make([]FracturePoint, 0, len(filtered))
	for _, rec := range filtered {
		family := UnknownFamily
		if rec.Familia != nil {
			family = *rec.Familia
		}
		color, ok := colors[family]
		if !ok {
			color = familyPalette[len(colors)%len(familyPalette)]
			colors[family] = color
		}
		points = append(points, FracturePoint{
			Record:       rec,
			Color:        color,
			Family:       family,
			Dip:          deref(rec.Buzamiento),
			DipDirection: deref(rec.DireccionBuzamiento),
			X:            deref(rec.X),
			Y:            deref(rec.Y),
		})
	}
	return points
}

// FractureStatistics summarizes the fracture columns of a record set.
type FractureStatistics struct {
	FamilyDistribution map[string]int `json:"family_distribution"`
	Families           []string       `json:"families"`
	Dip                *DipStatistics `json:"dip,omitempty"`
}

// DipStatistics holds descriptive dip statistics plus the dominant 30-degree
// dip range.
type DipStatistics struct {
	Mean          float64 `json:"mean"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	DominantRange string  `json:"dominant_range"`
}

// CalculateFractureStatistics computes the family distribution and dip
// summary. Returns nil when no record carries a family or a dip.
func CalculateFractureStatistics(records []Record) *FractureStatistics {
	dist := make(map[string]int)
	var dips []float64
	for i := range records {
		if records[i].Familia != nil {
			dist[*records[i].Familia]++
		}
		if records[i].Buzamiento != nil {
			dips = append(dips, *records[i].Buzamiento)
		}
	}
	if len(dist) == 0 && len(dips) == 0 {
		return nil
	}

	families := make([]string, 0, len(dist))
	for f := range dist {
		families = append(families, f)
	}
	sort.Strings(families)

	stats := &FractureStatistics{FamilyDistribution: dist, Families: families}
	if len(dips) > 0 {
		stats.Dip = dipStatistics(dips)
	}
	return stats
}

func dipStatistics(dips []float64) *DipStatistics {
	sum, min, max := 0.0, dips[0], dips[0]
	buckets := make(map[int]int)
	for _, d := range dips {
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
		b := int(d) / 30 * 30
		if b > 60 {
			b = 60
		}
		buckets[b]++
	}

	dominant, best := 0, -1
	for b, n := range buckets {
		if n > best || (n == best && b < dominant) {
			dominant, best = b, n
		}
	}

	return &DipStatistics{
		Mean:          sum / float64(len(dips)),
		Min:           min,
		Max:           max,
		DominantRange: rangeLabel(dominant),
	}
}

func rangeLabel(lo int) string {
	switch lo {
	case 0:
		return "0-30"
	case 30:
		return "30-60"
	default:
		return "60-90"
	}
}
