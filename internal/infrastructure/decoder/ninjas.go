package decoder

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// NinjasClient calls the API-Ninjas vinlookup endpoint.
type NinjasClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewNinjasClient(baseURL, apiKey string, httpClient *http.Client) *NinjasClient {
	return &NinjasClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *NinjasClient) Provider() domain.Provider {
	return domain.ProviderNinjas
}

func (c *NinjasClient) HasAPIKey() bool {
	return c.apiKey != ""
}

func (c *NinjasClient) Decode(ctx context.Context, req application.DecodeRequest) (*application.DecodeResult, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = c.apiKey
	}
	if apiKey == "" {
		return nil, application.NewMissingAPIKeyError()
	}

	endpoint := fmt.Sprintf("%s/v1/vinlookup?vin=%s", c.baseURL, url.QueryEscape(req.VIN.String()))
	headers := http.Header{}
	headers.Set("X-Api-Key", apiKey)
	headers.Set("Content-Type", "application/json")

	resp, err := fetchJSON[NinjasResponse](ctx, c.httpClient, domain.ProviderNinjas, endpoint, headers)
	if err != nil {
		return nil, err
	}

	// VIN-not-found and similar come back as 200 with an error field.
	if msg, ok := (*resp)["error"].(string); ok && msg != "" {
		return nil, &application.DecoderError{
			Provider:   string(domain.ProviderNinjas),
			Code:       "api_error",
			Message:    msg,
			StatusCode: http.StatusOK,
		}
	}

	return &application.DecodeResult{Flat: *resp}, nil
}
