package services

import (
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

type DecodeCommand struct {
	VIN      string
	Provider string
	// APIKey overrides the configured key for providers that need one.
	APIKey string
	// NoCache forces a remote call even when a fresh lookup exists.
	NoCache bool
}

// DecodedVehicle is a projected vehicle plus where it came from.
type DecodedVehicle struct {
	Vehicle   *domain.Vehicle
	LookupID  string
	Cached    bool
	DecodedAt time.Time
}
