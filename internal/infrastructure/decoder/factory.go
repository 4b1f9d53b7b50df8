package decoder

import (
	"net/http"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/config"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// NewHTTPClient returns the client shared by the provider adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// New builds the retrying decoder for provider from configuration.
func New(provider domain.Provider, cfg config.DecoderConfig, retryCfg config.RetryConfig) (application.Decoder, error) {
	httpClient := NewHTTPClient(cfg.ConnTimeout)

	var inner application.Decoder
	switch provider {
	case domain.ProviderNinjas:
		inner = NewNinjasClient(cfg.NinjasBaseURL, cfg.NinjasAPIKey, httpClient)
	case domain.ProviderNHTSA:
		inner = NewNHTSAClient(cfg.NHTSABaseURL, httpClient)
	default:
		return nil, domain.NewInvalidProviderError(string(provider))
	}

	return NewRetryClient(inner, retryCfg), nil
}
