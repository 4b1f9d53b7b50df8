package domain

import "strings"

// Provider names a remote VIN decoding service.
type Provider string

const (
	// ProviderNinjas is the commercial, key-based API-Ninjas vinlookup endpoint.
	ProviderNinjas Provider = "ninjas"
	// ProviderNHTSA is the public NHTSA vPIC decodevin endpoint.
	ProviderNHTSA Provider = "nhtsa"
)

func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case ProviderNinjas, ProviderNHTSA:
		return p, nil
	default:
		return "", NewInvalidProviderError(name)
	}
}

// RequiresAPIKey reports whether calls to the provider must carry a key.
func (p Provider) RequiresAPIKey() bool {
	return p == ProviderNinjas
}

// Attribute is one label/value pair ready for display.
type Attribute struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Vehicle is the projected result of a single decode.
type Vehicle struct {
	VIN        VIN         `json:"vin"`
	Provider   Provider    `json:"provider"`
	Attributes []Attribute `json:"attributes"`
}

// Get returns the value for key and whether it was present.
func (v *Vehicle) Get(key string) (string, bool) {
	for _, a := range v.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
