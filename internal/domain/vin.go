// Package domain holds the VIN value type, decoder result projection and
// the lookup history entity.
package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// VINLength is the fixed length of a modern (post-1981) VIN.
const VINLength = 17

// VIN is a Vehicle Identification Number. Values of this type are
// normalized (trimmed, upper-cased) but not necessarily valid.
type VIN string

// NormalizeVIN trims surrounding whitespace and upper-cases the input.
func NormalizeVIN(raw string) VIN {
	return VIN(strings.ToUpper(strings.TrimSpace(raw)))
}

// ParseVIN normalizes raw and validates the result.
func ParseVIN(raw string) (VIN, error) {
	vin := NormalizeVIN(raw)
	if err := vin.Validate(); err != nil {
		return "", err
	}
	return vin, nil
}

// Validate checks length and character set. I, O and Q are never used in
// VINs because they are too easily confused with 1 and 0.
func (v VIN) Validate() error {
	s := string(v)
	if n := utf8.RuneCountInString(s); n != VINLength {
		return NewInvalidVINError(fmt.Sprintf("expected %d characters, got %d", VINLength, n))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 'I' || c == 'O' || c == 'Q':
			return NewInvalidVINError(fmt.Sprintf("forbidden letter %q at position %d", c, i+1))
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return NewInvalidVINError(fmt.Sprintf("invalid character %q at position %d", c, i+1))
		}
	}
	return nil
}

// IsValidVIN reports whether s is a well-formed VIN. The input is
// matched as-is; callers that accept user input should normalize first.
func IsValidVIN(s string) bool {
	return VIN(s).Validate() == nil
}

// WMI returns the World Manufacturer Identifier prefix. It is only
// meaningful for a valid VIN.
func (v VIN) WMI() string {
	if len(v) < 3 {
		return string(v)
	}
	return string(v[:3])
}

func (v VIN) String() string {
	return string(v)
}
