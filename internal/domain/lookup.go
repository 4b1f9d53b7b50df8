package domain

import (
	"errors"
	"time"
)

// LookupStatus is the outcome of one decode attempt.
type LookupStatus string

const (
	LookupSucceeded LookupStatus = "SUCCEEDED"
	LookupNoData    LookupStatus = "NO_DATA"
	LookupFailed    LookupStatus = "FAILED"
)

// Lookup is the persisted record of a decode attempt. Successful lookups
// double as the response cache.
type Lookup struct {
	ID           string
	VIN          VIN
	Provider     Provider
	Status       LookupStatus
	Attributes   []Attribute
	ErrorMessage *string
	CreatedAt    time.Time
}

func NewLookup(id string, vin VIN, provider Provider) (*Lookup, error) {
	if id == "" {
		return nil, errors.New("lookup ID is required")
	}
	if err := vin.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseProvider(string(provider)); err != nil {
		return nil, err
	}

	return &Lookup{
		ID:        id,
		VIN:       vin,
		Provider:  provider,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Succeed records the projected attributes. An empty projection is
// recorded as NO_DATA.
func (l *Lookup) Succeed(attrs []Attribute) {
	l.Attributes = attrs
	l.ErrorMessage = nil
	if len(attrs) == 0 {
		msg := NoDataMessage
		l.Status = LookupNoData
		l.ErrorMessage = &msg
		return
	}
	l.Status = LookupSucceeded
}

func (l *Lookup) Fail(message string) {
	l.Status = LookupFailed
	l.Attributes = nil
	l.ErrorMessage = &message
}

// IsFresh reports whether the lookup can be served from cache at now.
func (l *Lookup) IsFresh(now time.Time, ttl time.Duration) bool {
	return l.Status == LookupSucceeded && ttl > 0 && now.Sub(l.CreatedAt) < ttl
}

func (l *Lookup) Vehicle() *Vehicle {
	return &Vehicle{
		VIN:        l.VIN,
		Provider:   l.Provider,
		Attributes: l.Attributes,
	}
}
