// Package decoder holds the HTTP adapters for remote VIN decoding services.
package decoder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// maxErrorBody caps how much of a failed response is read for diagnostics.
const maxErrorBody = 64 << 10

// fetchJSON issues a GET and decodes a successful JSON body into Resp.
// Numbers are kept as json.Number so flat payloads keep their formatting.
func fetchJSON[Resp any](ctx context.Context, httpClient *http.Client, provider domain.Provider, url string, headers http.Header) (*Resp, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	for name, values := range headers {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newStatusError(provider, resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var out Resp
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &out, nil
}

// newStatusError prefers the provider's own error text and falls back to
// a generic status message when the body carries none.
func newStatusError(provider domain.Provider, status int, body []byte) *application.DecoderError {
	decErr := &application.DecoderError{
		Provider:   string(provider),
		Code:       statusCode(status),
		Message:    fmt.Sprintf("API request failed with status: %d", status),
		StatusCode: status,
	}

	var errResp application.DecoderErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Err != "":
			decErr.Message = errResp.Err
		case errResp.Message != "":
			decErr.Message = errResp.Message
		}
	}

	return decErr
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return fmt.Sprintf("status_%d", status)
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
