package decoder

// NHTSAResponse is the body of vPIC /api/vehicles/decodevin.
type NHTSAResponse struct {
	Count          int           `json:"Count"`
	Message        string        `json:"Message"`
	SearchCriteria string        `json:"SearchCriteria"`
	Results        []NHTSAResult `json:"Results"`
}

// NHTSAResult is one decoded variable. Value and ValueId are null for
// variables the decoder could not fill.
type NHTSAResult struct {
	Value      *string `json:"Value"`
	ValueID    *string `json:"ValueId"`
	Variable   string  `json:"Variable"`
	VariableID int     `json:"VariableId"`
}

// vPIC variable IDs used for error reporting.
const (
	nhtsaErrorCodeVariableID = 143
	nhtsaErrorTextVariableID = 191
)

// NinjasResponse is the flat API-Ninjas vinlookup body. Known keys are
// vin, country, manufacturer, model, year, region, wmi, vds, vis and
// error; the map form keeps unknown keys for projection.
type NinjasResponse map[string]any
