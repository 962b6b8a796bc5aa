package geodata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column names as they appear in uploaded survey spreadsheets and in JSON
// payloads. The Spanish headers are part of the external contract and are
// preserved verbatim on output.
const (
	ColFrente              = "Frente"
	ColPKMedio             = "PK_medio"
	ColRMR                 = "RMR"
	ColFamilia             = "Familia"
	ColBuzamiento          = "Buzamiento"
	ColDireccionBuzamiento = "Direccion_Buzamiento"
	ColX                   = "X"
	ColY                   = "Y"
)

// Record is a single geological survey row. Recognized columns are typed and
// optional; anything else the spreadsheet carried is kept in Extra so the
// record round-trips through the API without losing columns.
type Record struct {
	Frente              *string
	PKMedio             *float64
	RMR                 *float64
	Familia             *string
	Buzamiento          *float64
	DireccionBuzamiento *float64
	X                   *float64
	Y                   *float64
	Extra               map[string]any
}

// numericColumns are coerced to float64 on ingest; unparseable cells become
// missing rather than errors.
var numericColumns = map[string]bool{
	ColPKMedio:             true,
	ColRMR:                 true,
	ColBuzamiento:          true,
	ColDireccionBuzamiento: true,
	ColX:                   true,
	ColY:                   true,
}

// NormalizeColumn trims surrounding whitespace and replaces internal spaces
// with underscores, so "Direccion Buzamiento " matches the canonical header.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// ToFloat coerces a cell value to float64. Returns false for empty strings,
// non-numeric text, and unsupported types.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Set assigns a raw cell value to the named column, coercing numeric columns
// and dropping values that cannot be coerced.
func (r *Record) Set(name string, value any) {
	name = NormalizeColumn(name)
	switch name {
	case ColFrente:
		if s, ok := toString(value); ok {
			r.Frente = &s
		}
	case ColFamilia:
		if s, ok := toString(value); ok {
			r.Familia = &s
		}
	case ColPKMedio:
		if f, ok := ToFloat(value); ok {
			r.PKMedio = &f
		}
	case ColRMR:
		if f, ok := ToFloat(value); ok {
			r.RMR = &f
		}
	case ColBuzamiento:
		if f, ok := ToFloat(value); ok {
			r.Buzamiento = &f
		}
	case ColDireccionBuzamiento:
		if f, ok := ToFloat(value); ok {
			r.DireccionBuzamiento = &f
		}
	case ColX:
		if f, ok := ToFloat(value); ok {
			r.X = &f
		}
	case ColY:
		if f, ok := ToFloat(value); ok {
			r.Y = &f
		}
	default:
		if name == "" || value == nil {
			return
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[name] = value
	}
}

// Value returns the value stored under the named column and whether it is set.
func (r *Record) Value(name string) (any, bool) {
	switch NormalizeColumn(name) {
	case ColFrente:
		if r.Frente != nil {
			return *r.Frente, true
		}
	case ColFamilia:
		if r.Familia != nil {
			return *r.Familia, true
		}
	case ColPKMedio:
		if r.PKMedio != nil {
			return *r.PKMedio, true
		}
	case ColRMR:
		if r.RMR != nil {
			return *r.RMR, true
		}
	case ColBuzamiento:
		if r.Buzamiento != nil {
			return *r.Buzamiento, true
		}
	case ColDireccionBuzamiento:
		if r.DireccionBuzamiento != nil {
			return *r.DireccionBuzamiento, true
		}
	case ColX:
		if r.X != nil {
			return *r.X, true
		}
	case ColY:
		if r.Y != nil {
			return *r.Y, true
		}
	default:
		v, ok := r.Extra[NormalizeColumn(name)]
		return v, ok
	}
	return nil, false
}

// Fields flattens the record back into its column-keyed map form. Only set
// columns are emitted, so output shape mirrors input shape.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.Extra)+8)
	for k, v := range r.Extra {
		out[k] = v
	}
	if r.Frente != nil {
		out[ColFrente] = *r.Frente
	}
	if r.PKMedio != nil {
		out[ColPKMedio] = *r.PKMedio
	}
	if r.RMR != nil {
		out[ColRMR] = *r.RMR
	}
	if r.Familia != nil {
		out[ColFamilia] = *r.Familia
	}
	if r.Buzamiento != nil {
		out[ColBuzamiento] = *r.Buzamiento
	}
	if r.DireccionBuzamiento != nil {
		out[ColDireccionBuzamiento] = *r.DireccionBuzamiento
	}
	if r.X != nil {
		out[ColX] = *r.X
	}
	if r.Y != nil {
		out[ColY] = *r.Y
	}
	return out
}

// Empty reports whether the record carries no values at all.
func (r *Record) Empty() bool {
	return r.Frente == nil && r.PKMedio == nil && r.RMR == nil &&
		r.Familia == nil && r.Buzamiento == nil && r.DireccionBuzamiento == nil &&
		r.X == nil && r.Y == nil && len(r.Extra) == 0
}

// UnmarshalJSON decodes a column-keyed object, coercing recognized numeric
// columns leniently (numbers or numeric strings).
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record{}
	for k, v := range raw {
		r.Set(k, v)
	}
	return nil
}

// MarshalJSON emits the record in its original column-keyed shape.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

func toString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return "", false
		}
		return s, true
	case nil:
		return "", false
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	default:
		return fmt.Sprint(x), true
	}
}
