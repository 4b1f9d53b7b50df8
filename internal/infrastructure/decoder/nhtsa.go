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

// NHTSAClient calls the public vPIC decodevin endpoint. No key is needed.
type NHTSAClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNHTSAClient(baseURL string, httpClient *http.Client) *NHTSAClient {
	return &NHTSAClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *NHTSAClient) Provider() domain.Provider {
	return domain.ProviderNHTSA
}

func (c *NHTSAClient) Decode(ctx context.Context, req application.DecodeRequest) (*application.DecodeResult, error) {
	endpoint := fmt.Sprintf("%s/api/vehicles/decodevin/%s?format=json", c.baseURL, url.PathEscape(req.VIN.String()))

	resp, err := fetchJSON[NHTSAResponse](ctx, c.httpClient, domain.ProviderNHTSA, endpoint, nil)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(resp.Results))
	var errorCode, errorText string
	for _, r := range resp.Results {
		value := ""
		if r.Value != nil {
			value = *r.Value
		}
		switch r.VariableID {
		case nhtsaErrorCodeVariableID:
			errorCode = strings.TrimSpace(value)
		case nhtsaErrorTextVariableID:
			errorText = strings.TrimSpace(value)
		}
		records = append(records, domain.Record{
			Variable:   r.Variable,
			Value:      value,
			VariableID: r.VariableID,
		})
	}

	if errorCode != "" && errorCode != "0" {
		msg := errorText
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("NHTSA returned error code %s", errorCode)
		}
		return nil, &application.DecoderError{
			Provider:   string(domain.ProviderNHTSA),
			Code:       "nhtsa_error_" + errorCode,
			Message:    msg,
			StatusCode: http.StatusOK,
		}
	}

	return &application.DecodeResult{Records: records}, nil
}
