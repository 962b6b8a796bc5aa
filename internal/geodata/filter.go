package geodata

import (
	"encoding/json"
	"fmt"
)

// Condition is one filter entry: either an exact-match scalar or an
// inclusive {min, max} range with optional bounds.
type Condition struct {
	Min    *float64
	Max    *float64
	Equals any
	Range  bool
}

// FilterSpec maps column names to conditions. Entries compose as a logical
// AND; entries naming columns absent from the record set are ignored.
type FilterSpec map[string]Condition

// UnmarshalJSON accepts either a scalar (equality) or an object with "min"
// and/or "max" keys (range).
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Condition{}
	if m, ok := raw.(map[string]any); ok {
		c.Range = true
		if v, ok := m["min"]; ok && v != nil {
			f, ok := ToFloat(v)
			if !ok {
				return fmt.Errorf("filter min: not a number: %v", v)
			}
			c.Min = &f
		}
		if v, ok := m["max"]; ok && v != nil {
			f, ok := ToFloat(v)
			if !ok {
				return fmt.Errorf("filter max: not a number: %v", v)
			}
			c.Max = &f
		}
		return nil
	}
	c.Equals = raw
	return nil
}

// MarshalJSON round-trips the condition in its wire shape, so applied filters
// can be echoed back in responses.
func (c Condition) MarshalJSON() ([]byte, error) {
	if c.Range {
		m := map[string]any{}
		if c.Min != nil {
			m["min"] = *c.Min
		}
		if c.Max != nil {
			m["max"] = *c.Max
		}
		return json.Marshal(m)
	}
	return json.Marshal(c.Equals)
}

func (c Condition) empty() bool {
	if c.Range {
		return c.Min == nil && c.Max == nil
	}
	return c.Equals == nil
}

// Filter applies the spec entry by entry against the progressively narrowed
// set. An empty record set or spec yields the input unchanged (never an
// error), and filtering is idempotent.
func Filter(records []Record, spec FilterSpec) []Record {
	if len(records) == 0 {
		return []Record{}
	}

	current := records
	for column, cond := range spec {
		if cond.empty() || !columnPresent(records, column) {
			continue
		}
		next := make([]Record, 0, len(current))
		for _, rec := range current {
			if matches(&rec, column, cond) {
				next = append(next, rec)
			}
		}
		current = next
	}

	out := make([]Record, len(current))
	copy(out, current)
	return out
}

// columnPresent mirrors a dataframe column check: the condition applies when
// any record in the original set carries the column.
func columnPresent(records []Record, column string) bool {
	for i := range records {
		if _, ok := records[i].Value(column); ok {
			return true
		}
	}
	return false
}

func matches(rec *Record, column string, cond Condition) bool {
	v, ok := rec.Value(column)
	if !ok {
		return false
	}

	if cond.Range {
		f, ok := ToFloat(v)
		if !ok {
			return false
		}
		if cond.Min != nil && f < *cond.Min {
			return false
		}
		if cond.Max != nil && f > *cond.Max {
			return false
		}
		return true
	}

	if fv, ok := ToFloat(v); ok {
		if fc, ok := ToFloat(cond.Equals); ok {
			return fv == fc
		}
	}
	return fmt.Sprint(v) == fmt.Sprint(cond.Equals)
}
