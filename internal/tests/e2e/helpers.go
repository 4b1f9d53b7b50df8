package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/api"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to gateway
type TestClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// APIError is a non-2xx gateway response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s: %s", e.Status, e.Code, e.Message)
}

// DecodeVIN calls GET /api/v1/vins/{vin}
func (c *TestClient) DecodeVIN(t *testing.T, vin, query string, apiKey string) (*api.Vehicle, error) {
	url := c.baseURL + "/api/v1/vins/" + vin
	if query != "" {
		url += "?" + query
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}

	var out api.VehicleResponse
	if err := c.do(t, req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Decode calls POST /api/v1/decode
func (c *TestClient) Decode(t *testing.T, body api.DecodeRequest) (*api.Vehicle, error) {
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/v1/decode", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	var out api.VehicleResponse
	if err := c.do(t, req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetLookup calls GET /api/v1/lookups/{id}
func (c *TestClient) GetLookup(t *testing.T, id string) (*api.Lookup, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/v1/lookups/"+id, nil)
	require.NoError(t, err)

	var out api.LookupResponse
	if err := c.do(t, req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// ListLookups calls GET /api/v1/lookups?vin=
func (c *TestClient) ListLookups(t *testing.T, vin string) ([]api.Lookup, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/v1/lookups?vin="+vin, nil)
	require.NoError(t, err)

	var out api.LookupListResponse
	if err := c.do(t, req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *TestClient) do(t *testing.T, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if resp.StatusCode >= 400 {
		var errResp api.ErrorResponse
		require.NoError(t, json.Unmarshal(bodyBytes, &errResp), string(bodyBytes))
		return &APIError{Status: resp.StatusCode, Code: errResp.Error.Code, Message: errResp.Error.Message}
	}

	require.NoError(t, json.Unmarshal(bodyBytes, out), string(bodyBytes))
	return nil
}
