package advise_test

import (
	"encoding/json"
	"strings"
	"testing"

	"geoanalyzer/internal/advise"
	"geoanalyzer/internal/geodata"
)

func mustRecords(t *testing.T, raw string) []geodata.Record {
	t.Helper()
	var records []geodata.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	return records
}

func hasAdvice(out []string, fragment string) bool {
	for _, s := range out {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}

func TestRecommendationsEmpty(t *testing.T) {
	out := advise.Recommendations(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("empty input should yield an empty (non-nil) list, got %v", out)
	}
}

func TestRecommendationsRMRTiers(t *testing.T) {
	cases := []struct {
		rmr      float64
		fragment string
	}{
		{85, "minimal support"},
		{70, "spot bolting"},
		{50, "systematic bolting"},
		{30, "steel sets"},
		{10, "forepoling"},
	}

	for _, tc := range cases {
		records := mustRecords(t, `[{"RMR": 0}]`)
		records[0].RMR = &tc.rmr

		out := advise.Recommendations(records)
		if len(out) != 1 || !strings.Contains(out[0], tc.fragment) {
			t.Fatalf("RMR %v: expected advice containing %q, got %v", tc.rmr, tc.fragment, out)
		}
	}
}

func TestRecommendationsSkipRMRAdviceWithoutColumn(t *testing.T) {
	// A dataset that never had an RMR column must not collect rock-condition
	// advice, even after cleaning.
	records := geodata.Clean(geodata.FromTable(
		[]string{"Familia"},
		[][]any{{"F1"}, {"F2"}},
	))

	out := advise.Recommendations(records)
	if hasAdvice(out, "rock conditions") {
		t.Fatalf("dataset has no RMR column but got advisory: %v", out)
	}
	if hasAdvice(out, "variability") {
		t.Fatalf("dataset has no RMR column but got variability warning: %v", out)
	}
}

func TestRecommendationsVariabilityWarning(t *testing.T) {
	// Sample std of {20, 80} is ~42.4, well above the 20 cut.
	spread := mustRecords(t, `[{"RMR": 20}, {"RMR": 80}]`)
	if out := advise.Recommendations(spread); !hasAdvice(out, "variability") {
		t.Fatalf("wide RMR spread should trigger the variability warning, got %v", out)
	}

	tight := mustRecords(t, `[{"RMR": 60}, {"RMR": 65}, {"RMR": 62}]`)
	if out := advise.Recommendations(tight); hasAdvice(out, "variability") {
		t.Fatalf("tight RMR spread should not trigger the warning, got %v", out)
	}
}

func TestRecommendationsWedgeAnalysis(t *testing.T) {
	three := mustRecords(t, `[
		{"Familia": "F1"}, {"Familia": "F2"}, {"Familia": "F3"}
	]`)
	if out := advise.Recommendations(three); !hasAdvice(out, "wedge") {
		t.Fatalf("three families should suggest wedge analysis, got %v", out)
	}

	two := mustRecords(t, `[
		{"Familia": "F1"}, {"Familia": "F2"}, {"Familia": "F1"}
	]`)
	if out := advise.Recommendations(two); hasAdvice(out, "wedge") {
		t.Fatalf("two families should not suggest wedge analysis, got %v", out)
	}
}

func TestRecommendationsElongation(t *testing.T) {
	// Six points stretched along X: range 500 vs 10, ratio 50.
	elongated := mustRecords(t, `[
		{"X": 0, "Y": 0}, {"X": 100, "Y": 2}, {"X": 200, "Y": 4},
		{"X": 300, "Y": 6}, {"X": 400, "Y": 8}, {"X": 500, "Y": 10}
	]`)
	if out := advise.Recommendations(elongated); !hasAdvice(out, "Elongated") {
		t.Fatalf("stretched cloud should trigger the elongation note, got %v", out)
	}

	// Same spread but only five points: below the minimum count.
	few := mustRecords(t, `[
		{"X": 0, "Y": 0}, {"X": 100, "Y": 2}, {"X": 200, "Y": 4},
		{"X": 300, "Y": 6}, {"X": 500, "Y": 10}
	]`)
	if out := advise.Recommendations(few); hasAdvice(out, "Elongated") {
		t.Fatalf("five points should not trigger the elongation note, got %v", out)
	}

	square := mustRecords(t, `[
		{"X": 0, "Y": 0}, {"X": 100, "Y": 100}, {"X": 200, "Y": 50},
		{"X": 50, "Y": 200}, {"X": 150, "Y": 150}, {"X": 75, "Y": 25}
	]`)
	if out := advise.Recommendations(square); hasAdvice(out, "Elongated") {
		t.Fatalf("compact cloud should not trigger the elongation note, got %v", out)
	}
}

func TestRecommendationsDegenerateLine(t *testing.T) {
	// All Y identical: the smaller range is 0, the larger positive.
	line := mustRecords(t, `[
		{"X": 0, "Y": 5}, {"X": 10, "Y": 5}, {"X": 20, "Y": 5},
		{"X": 30, "Y": 5}, {"X": 40, "Y": 5}, {"X": 50, "Y": 5}
	]`)
	if out := advise.Recommendations(line); !hasAdvice(out, "Elongated") {
		t.Fatalf("a perfect line should count as elongated, got %v", out)
	}

	// All points identical: both ranges zero, not elongated.
	point := mustRecords(t, `[
		{"X": 5, "Y": 5}, {"X": 5, "Y": 5}, {"X": 5, "Y": 5},
		{"X": 5, "Y": 5}, {"X": 5, "Y": 5}, {"X": 5, "Y": 5}
	]`)
	if out := advise.Recommendations(point); hasAdvice(out, "Elongated") {
		t.Fatalf("a coincident cloud should not count as elongated, got %v", out)
	}
}

func TestRecommendationsCombined(t *testing.T) {
	records := mustRecords(t, `[
		{"RMR": 20, "Familia": "F1", "X": 0, "Y": 0},
		{"RMR": 80, "Familia": "F2", "X": 100, "Y": 1},
		{"RMR": 25, "Familia": "F3", "X": 200, "Y": 2},
		{"RMR": 75, "Familia": "F1", "X": 300, "Y": 3},
		{"RMR": 22, "Familia": "F2", "X": 400, "Y": 4},
		{"RMR": 78, "Familia": "F3", "X": 500, "Y": 5}
	]`)

	out := advise.Recommendations(records)
	if len(out) != 4 {
		t.Fatalf("expected all four rules to fire, got %d: %v", len(out), out)
	}
	// Rules report in a fixed order: tier advice, variability, wedge, elongation.
	if !strings.Contains(out[0], "rock conditions") {
		t.Fatalf("first advisory should be the RMR tier, got %q", out[0])
	}
	if !strings.Contains(out[1], "variability") || !strings.Contains(out[2], "wedge") ||
		!strings.Contains(out[3], "Elongated") {
		t.Fatalf("advisories out of order: %v", out)
	}
}
