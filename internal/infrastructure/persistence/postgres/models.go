package postgres

import (
	"time"
)

// LookupModel mirrors a row of the lookups table. Attributes holds the
// raw JSONB document.
type LookupModel struct {
	ID           string
	VIN          string
	Provider     string
	Status       string
	Attributes   []byte
	ErrorMessage *string
	CreatedAt    time.Time
}
