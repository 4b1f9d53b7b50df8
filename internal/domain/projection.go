package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Field is a whitelisted response attribute and its display label.
type Field struct {
	Key   string
	Label string
}

// Record is one entry of a list-shaped decoder response.
type Record struct {
	Variable   string
	Value      string
	VariableID int
}

// NinjasFields is the display whitelist for the flat API-Ninjas payload.
var NinjasFields = []Field{
	{Key: "manufacturer", Label: "manufacturer"},
	{Key: "model", Label: "model"},
	{Key: "year", Label: "year"},
	{Key: "country", Label: "country"},
	{Key: "region", Label: "region"},
	{Key: "wmi", Label: "WMI"},
}

// NHTSAFields is the display whitelist for vPIC decodevin records.
var NHTSAFields = []Field{
	{Key: "Make", Label: "Make"},
	{Key: "Model", Label: "Model"},
	{Key: "Model Year", Label: "Model Year"},
	{Key: "Manufacturer Name", Label: "Manufacturer"},
	{Key: "Vehicle Type", Label: "Vehicle Type"},
	{Key: "Body Class", Label: "Body Class"},
	{Key: "Trim", Label: "Trim"},
	{Key: "Series", Label: "Series"},
	{Key: "Drive Type", Label: "Drive Type"},
	{Key: "Fuel Type - Primary", Label: "Fuel Type"},
	{Key: "Engine Number of Cylinders", Label: "Cylinders"},
	{Key: "Displacement (L)", Label: "Displacement (L)"},
	{Key: "Transmission Style", Label: "Transmission"},
	{Key: "Doors", Label: "Doors"},
	{Key: "Plant Country", Label: "Plant Country"},
	{Key: "Plant City", Label: "Plant City"},
}

// FieldsFor returns the whitelist used for a provider's payload.
func FieldsFor(p Provider) []Field {
	if p == ProviderNHTSA {
		return NHTSAFields
	}
	return NinjasFields
}

// IsBlankValue reports whether a decoder value carries no information.
// vPIC fills unknown variables with "Not Applicable" or leaves them null.
func IsBlankValue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "not applicable", "null", "n/a":
		return true
	}
	return false
}

// ProjectFlat picks whitelisted keys out of a flat JSON object, in
// whitelist order. Falsy values (empty strings, zero numbers, false,
// nested objects) are skipped.
func ProjectFlat(data map[string]any, fields []Field) []Attribute {
	out := make([]Attribute, 0, len(fields))
	for _, f := range fields {
		raw, ok := data[f.Key]
		if !ok {
			continue
		}
		value, ok := scalarString(raw)
		if !ok || IsBlankValue(value) {
			continue
		}
		out = append(out, Attribute{Key: f.Key, Label: f.Label, Value: value})
	}
	return out
}

// ProjectRecords picks whitelisted variables out of a record list. Output
// follows whitelist order regardless of response order; the first
// non-blank occurrence of a variable wins.
func ProjectRecords(records []Record, fields []Field) []Attribute {
	byVariable := make(map[string]string, len(records))
	for _, r := range records {
		if IsBlankValue(r.Value) {
			continue
		}
		if _, seen := byVariable[r.Variable]; !seen {
			byVariable[r.Variable] = strings.TrimSpace(r.Value)
		}
	}

	out := make([]Attribute, 0, len(fields))
	for _, f := range fields {
		if v, ok := byVariable[f.Key]; ok {
			out = append(out, Attribute{Key: f.Key, Label: f.Label, Value: v})
		}
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), t != ""
	case json.Number:
		f, err := t.Float64()
		if err != nil || f == 0 {
			return "", false
		}
		return t.String(), true
	case float64:
		if t == 0 {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), t != 0
	case int64:
		return strconv.FormatInt(t, 10), t != 0
	case bool:
		return "true", t
	default:
		return "", false
	}
}
