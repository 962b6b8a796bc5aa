package geodata_test

import (
	"encoding/json"
	"testing"

	"geoanalyzer/internal/geodata"
)

func mustSpec(t *testing.T, raw string) geodata.FilterSpec {
	t.Helper()
	var spec geodata.FilterSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}
	return spec
}

const rmrFive = `[
	{"RMR": 75}, {"RMR": 68}, {"RMR": 45}, {"RMR": 52}, {"RMR": 91}
]`

func TestFilterRangeMin(t *testing.T) {
	records := mustRecords(t, rmrFive)

	got := geodata.Filter(records, mustSpec(t, `{"RMR": {"min": 70}}`))
	if len(got) != 2 {
		t.Fatalf("min 70 should keep 2 records, got %d", len(got))
	}
	if *got[0].RMR != 75 || *got[1].RMR != 91 {
		t.Fatalf("expected 75 and 91, got %v and %v", *got[0].RMR, *got[1].RMR)
	}

	got = geodata.Filter(records, mustSpec(t, `{"RMR": {"min": 80}}`))
	if len(got) != 1 || *got[0].RMR != 91 {
		t.Fatalf("min 80 should keep only 91, got %d records", len(got))
	}
}

func TestFilterExcludesAllWhenNothingMatches(t *testing.T) {
	records := mustRecords(t, `[{"RMR": 75}]`)
	got := geodata.Filter(records, mustSpec(t, `{"RMR": {"min": 80}}`))
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d records", len(got))
	}
}

func TestFilterClosedRangeInclusive(t *testing.T) {
	records := mustRecords(t, rmrFive)
	got := geodata.Filter(records, mustSpec(t, `{"RMR": {"min": 45, "max": 75}}`))
	// Both bounds are inclusive: 75, 68, 45 and 52 all fall inside.
	if len(got) != 4 {
		t.Fatalf("closed range [45,75] should keep 4 records, got %d", len(got))
	}
	for _, rec := range got {
		if *rec.RMR < 45 || *rec.RMR > 75 {
			t.Fatalf("record outside [45,75] kept: %v", *rec.RMR)
		}
	}
}

func TestFilterEquality(t *testing.T) {
	records := mustRecords(t, `[
		{"Frente": "T1", "RMR": 75},
		{"Frente": "T2", "RMR": 45},
		{"Frente": "T1", "RMR": 60}
	]`)

	got := geodata.Filter(records, mustSpec(t, `{"Frente": "T1"}`))
	if len(got) != 2 {
		t.Fatalf("equality on T1 should keep 2 records, got %d", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	records := mustRecords(t, rmrFive)
	spec := mustSpec(t, `{"RMR": {"min": 50, "max": 80}}`)

	once := geodata.Filter(records, spec)
	twice := geodata.Filter(once, spec)

	if len(once) != len(twice) {
		t.Fatalf("filtering should be idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if *once[i].RMR != *twice[i].RMR {
			t.Fatalf("record %d changed on second pass", i)
		}
	}
}

func TestFilterRangeOrderCommutative(t *testing.T) {
	records := mustRecords(t, `[
		{"RMR": 75, "PK_medio": 100},
		{"RMR": 68, "PK_medio": 250},
		{"RMR": 45, "PK_medio": 150},
		{"RMR": 91, "PK_medio": 180}
	]`)

	ab := geodata.Filter(records, mustSpec(t, `{"RMR": {"min": 60}, "PK_medio": {"max": 200}}`))
	ba := geodata.Filter(records, mustSpec(t, `{"PK_medio": {"max": 200}, "RMR": {"min": 60}}`))

	if len(ab) != 2 || len(ba) != 2 {
		t.Fatalf("both orders should keep 2 records, got %d and %d", len(ab), len(ba))
	}
	for i := range ab {
		if *ab[i].RMR != *ba[i].RMR {
			t.Fatalf("filter order changed the result set at %d", i)
		}
	}
}

func TestFilterUnknownColumnIgnored(t *testing.T) {
	records := mustRecords(t, rmrFive)
	got := geodata.Filter(records, mustSpec(t, `{"Profundidad": {"min": 10}}`))
	if len(got) != len(records) {
		t.Fatalf("unknown column should be ignored, got %d records", len(got))
	}
}

func TestFilterNullConditionIgnored(t *testing.T) {
	records := mustRecords(t, rmrFive)
	got := geodata.Filter(records, mustSpec(t, `{"RMR": null}`))
	if len(got) != len(records) {
		t.Fatalf("null condition should be ignored, got %d records", len(got))
	}
}

func TestFilterMissingFieldExcludesRecord(t *testing.T) {
	records := mustRecords(t, `[{"RMR": 75}, {"Frente": "T1"}]`)
	got := geodata.Filter(records, mustSpec(t, `{"RMR": {"min": 0}}`))
	if len(got) != 1 {
		t.Fatalf("record without RMR should be excluded, got %d records", len(got))
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := geodata.Filter(nil, mustSpec(t, `{"RMR": {"min": 0}}`))
	if got == nil || len(got) != 0 {
		t.Fatalf("empty input should yield empty non-nil result, got %v", got)
	}
}
