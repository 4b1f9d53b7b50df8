package api

import (
	"time"
)

type Provider string

const (
	Ninjas Provider = "ninjas"
	Nhtsa  Provider = "nhtsa"
)

type LookupStatus string

const (
	SUCCEEDED LookupStatus = "SUCCEEDED"
	NODATA    LookupStatus = "NO_DATA"
	FAILED    LookupStatus = "FAILED"
)

type Attribute struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type Vehicle struct {
	Vin        string      `json:"vin"`
	Provider   Provider    `json:"provider"`
	Wmi        string      `json:"wmi"`
	Attributes []Attribute `json:"attributes"`
	LookupId   string      `json:"lookupId"`
	Cached     bool        `json:"cached"`
	DecodedAt  time.Time   `json:"decodedAt"`
}

type Lookup struct {
	Id           string       `json:"id"`
	Vin          string       `json:"vin"`
	Provider     Provider     `json:"provider"`
	Status       LookupStatus `json:"status"`
	Attributes   []Attribute  `json:"attributes"`
	ErrorMessage *string      `json:"errorMessage,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// DecodeRequest is the body of POST /api/v1/decode.
type DecodeRequest struct {
	Vin      string    `json:"vin" validate:"required,vin"`
	Provider *Provider `json:"provider,omitempty" validate:"omitempty,oneof=ninjas nhtsa"`
	NoCache  *bool     `json:"no_cache,omitempty"`
}

type VehicleResponse struct {
	Success bool    `json:"success"`
	Data    Vehicle `json:"data"`
}

type LookupResponse struct {
	Success bool   `json:"success"`
	Data    Lookup `json:"data"`
}

type LookupListResponse struct {
	Success bool     `json:"success"`
	Data    []Lookup `json:"data"`
	Page    Page     `json:"page"`
}

type HealthResponse struct {
	Status    string     `json:"status"`
	Providers []Provider `json:"providers,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// DecodeVINParams defines parameters for DecodeVIN.
type DecodeVINParams struct {
	Provider *Provider `form:"provider,omitempty" json:"provider,omitempty"`
	NoCache  *bool     `form:"no_cache,omitempty" json:"no_cache,omitempty"`
	XApiKey  *string   `json:"X-Api-Key,omitempty"`
}

// DecodeVehicleParams defines parameters for DecodeVehicle.
type DecodeVehicleParams struct {
	XApiKey *string `json:"X-Api-Key,omitempty"`
}

// ListLookupsParams defines parameters for ListLookups.
type ListLookupsParams struct {
	Vin    *string `form:"vin,omitempty" json:"vin,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int    `form:"offset,omitempty" json:"offset,omitempty"`
}
