package geodata

import "math"

// FromTable converts a raw header + rows table into records. Column names are
// normalized, entirely empty rows and unnamed columns are dropped, and cell
// values are coerced per column type. The returned records have not yet had
// domain rules applied; pass them through Clean for that.
func FromTable(columns []string, rows [][]any) []Record {
	if len(columns) == 0 || len(rows) == 0 {
		return []Record{}
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = NormalizeColumn(c)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		var rec Record
		for i, cell := range row {
			if i >= len(names) || names[i] == "" || cell == nil {
				continue
			}
			if s, ok := cell.(string); ok && s == "" {
				continue
			}
			rec.Set(names[i], cell)
		}
		if rec.Empty() {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Clean applies the domain rules to a record set: RMR missing becomes 0 and
// is clamped to [0,100], dip missing becomes 0 and is clamped to [0,90], dip
// direction missing becomes 0 and is reduced modulo 360. A rule only applies
// when its column exists somewhere in the set; columns the dataset never had
// stay absent rather than being invented as zeros. Malformed cells were
// already dropped to missing during ingest, so no input can make Clean fail;
// an empty or nil set is returned unchanged.
func Clean(records []Record) []Record {
	if len(records) == 0 {
		return records
	}

	var hasRMR, hasDip, hasDir bool
	for i := range records {
		hasRMR = hasRMR || records[i].RMR != nil
		hasDip = hasDip || records[i].Buzamiento != nil
		hasDir = hasDir || records[i].DireccionBuzamiento != nil
	}

	out := make([]Record, len(records))
	for i, rec := range records {
		if hasRMR {
			rmr := clamp(deref(rec.RMR), 0, 100)
			rec.RMR = &rmr
		}
		if hasDip {
			dip := clamp(deref(rec.Buzamiento), 0, 90)
			rec.Buzamiento = &dip
		}
		if hasDir {
			dir := mod360(deref(rec.DireccionBuzamiento))
			rec.DireccionBuzamiento = &dir
		}
		out[i] = rec
	}
	return out
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mod360(v float64) float64 {
	m := math.Mod(v, 360)
	if m < 0 {
		m += 360
	}
	return m
}
