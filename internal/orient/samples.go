package orient

// Sample is a validated (dip, dip direction) pair. Dip is in [0,90], dip
// direction in [0,360).
type Sample struct {
	Dip          float64 `json:"dip"`
	DipDirection float64 `json:"dip_direction"`
	Family       string  `json:"family,omitempty"`
}

// Measurement is the wire form of one orientation entry. Both the current
// {dip, dip_direction} keys and the legacy {plunge, azimuth} keys are
// accepted; both must keep working for backward compatibility.
type Measurement struct {
	Dip          *float64 `json:"dip"`
	DipDirection *float64 `json:"dip_direction"`
	Plunge       *float64 `json:"plunge"`
	Azimuth      *float64 `json:"azimuth"`
	Family       string   `json:"family"`
}

// CollectSamples validates measurements into samples. Entries missing an
// angle pair or holding out-of-range values are dropped, never clamped.
func CollectSamples(measurements []Measurement) []Sample {
	samples := make([]Sample, 0, len(measurements))
	for _, m := range measurements {
		dip, dir, ok := m.angles()
		if !ok {
			continue
		}
		if dip < 0 || dip > 90 || dir < 0 || dir >= 360 {
			continue
		}
		family := m.Family
		if family == "" {
			family = "Unknown"
		}
		samples = append(samples, Sample{Dip: dip, DipDirection: dir, Family: family})
	}
	return samples
}

func (m Measurement) angles() (dip, dir float64, ok bool) {
	if m.Dip != nil && m.DipDirection != nil {
		return *m.Dip, *m.DipDirection, true
	}
	if m.Plunge != nil && m.Azimuth != nil {
		return *m.Plunge, *m.Azimuth, true
	}
	return 0, 0, false
}

// Statistics summarizes a set of orientation samples. Concentration is the
// mean resultant length of the dip directions and dispersion its complement,
// so the two always sum to 1.
type Statistics struct {
	Count            int     `json:"count"`
	MeanDip          float64 `json:"mean_dip"`
	MeanDipDirection float64 `json:"mean_dip_direction"`
	Concentration    float64 `json:"concentration"`
	Dispersion       float64 `json:"dispersion"`
}

// CalculateStatistics computes orientation statistics over the samples.
// Returns a zero-count result for an empty set rather than an error.
func CalculateStatistics(samples []Sample) Statistics {
	if len(samples) == 0 {
		return Statistics{}
	}

	dipSum := 0.0
	directions := make([]float64, len(samples))
	for i, s := range samples {
		dipSum += s.Dip
		directions[i] = s.DipDirection
	}

	r := ResultantLength(directions)
	return Statistics{
		Count:            len(samples),
		MeanDip:          dipSum / float64(len(samples)),
		MeanDipDirection: CircularMean(directions),
		Concentration:    r,
		Dispersion:       1 - r,
	}
}

// StereonetPoint is one plottable pole: the angular coordinate is the dip
// direction and the radial coordinate the complement of the dip, matching a
// polar stereonet with north at zero.
type StereonetPoint struct {
	AzimuthDeg float64 `json:"azimuth"`
	RadiusDeg  float64 `json:"radius"`
	Family     string  `json:"family"`
}

// StereonetSeries converts samples to plot-ready stereonet points.
func StereonetSeries(samples []Sample) []StereonetPoint {
	points := make([]StereonetPoint, len(samples))
	for i, s := range samples {
		points[i] = StereonetPoint{
			AzimuthDeg: s.DipDirection,
			RadiusDeg:  90 - s.Dip,
			Family:     s.Family,
		}
	}
	return points
}
