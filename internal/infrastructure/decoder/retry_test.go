package decoder_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/application/mocks"
	"github.com/DanielPopoola/vin-gateway/internal/config"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/decoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var retryCfg = config.RetryConfig{
	BaseDelay:  time.Millisecond,
	MaxRetries: 3,
}

func TestRetryClient_Decode_Success(t *testing.T) {
	mockDecoder := mocks.NewMockDecoder(t, domain.ProviderNHTSA)
	retryClient := decoder.NewRetryClient(mockDecoder, retryCfg)

	req := application.DecodeRequest{VIN: testVIN}
	expected := &application.DecodeResult{Records: []domain.Record{{Variable: "Make", Value: "HONDA"}}}

	mockDecoder.On("Decode", mock.Anything, req).Return(expected, nil).Once()

	res, err := retryClient.Decode(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, expected, res)
	assert.Equal(t, domain.ProviderNHTSA, retryClient.Provider())
}

func TestRetryClient_Decode_RetriesOn5xx(t *testing.T) {
	mockDecoder := mocks.NewMockDecoder(t, domain.ProviderNinjas)
	retryClient := decoder.NewRetryClient(mockDecoder, retryCfg)

	req := application.DecodeRequest{VIN: testVIN, APIKey: "key"}
	expected := &application.DecodeResult{Flat: map[string]any{"manufacturer": "Honda"}}

	// First two calls fail with 500
	mockDecoder.On("Decode", mock.Anything, req).Return(nil, &application.DecoderError{
		Code:       "internal_server_error",
		Message:    "API request failed with status: 500",
		StatusCode: http.StatusInternalServerError,
	}).Twice()

	// Third call succeeds
	mockDecoder.On("Decode", mock.Anything, req).Return(expected, nil).Once()

	res, err := retryClient.Decode(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, expected, res)
}

func TestRetryClient_Decode_DoesNotRetryOn4xx(t *testing.T) {
	mockDecoder := mocks.NewMockDecoder(t, domain.ProviderNinjas)
	retryClient := decoder.NewRetryClient(mockDecoder, retryCfg)

	req := application.DecodeRequest{VIN: testVIN, APIKey: "bad"}
	expectedErr := &application.DecoderError{
		Code:       "bad_request",
		Message:    "Invalid API Key.",
		StatusCode: http.StatusBadRequest,
	}

	mockDecoder.On("Decode", mock.Anything, req).Return(nil, expectedErr).Once()

	res, err := retryClient.Decode(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, res)

	decErr, ok := application.IsDecoderError(err)
	require.True(t, ok)
	assert.Equal(t, expectedErr.Code, decErr.Code)
}

func TestRetryClient_Decode_DoesNotRetryRateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	t.Cleanup(srv.Close)

	ninjas := decoder.NewNinjasClient(srv.URL, "key", decoder.NewHTTPClient(time.Second))
	retryClient := decoder.NewRetryClient(ninjas, retryCfg)

	_, err := retryClient.Decode(context.Background(), application.DecodeRequest{VIN: testVIN})

	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.NotContains(t, err.Error(), "maximum retries exceeded")
	assert.Equal(t, application.ErrCodeRateLimited, application.ToErrorCode(err))
	assert.Equal(t, "quota exceeded", application.UserMessage(err))
}

func TestRetryClient_Decode_DoesNotRetryMissingKey(t *testing.T) {
	mockDecoder := mocks.NewMockDecoder(t, domain.ProviderNinjas)
	retryClient := decoder.NewRetryClient(mockDecoder, retryCfg)

	req := application.DecodeRequest{VIN: testVIN}
	mockDecoder.On("Decode", mock.Anything, req).Return(nil, application.NewMissingAPIKeyError()).Once()

	_, err := retryClient.Decode(context.Background(), req)

	assert.Equal(t, application.ErrCodeMissingAPIKey, application.ToErrorCode(err))
}

func TestRetryClient_Decode_ExhaustsRetries(t *testing.T) {
	mockDecoder := mocks.NewMockDecoder(t, domain.ProviderNHTSA)
	retryClient := decoder.NewRetryClient(mockDecoder, retryCfg)

	req := application.DecodeRequest{VIN: testVIN}

	// All 3 attempts fail
	mockDecoder.On("Decode", mock.Anything, req).Return(nil, errors.New("connection refused")).Times(3)

	res, err := retryClient.Decode(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "maximum retries exceeded")
}

func TestRetryClient_Decode_SingleAttemptReturnsRawError(t *testing.T) {
	mockDecoder := mocks.NewMockDecoder(t, domain.ProviderNHTSA)
	retryClient := decoder.NewRetryClient(mockDecoder, config.RetryConfig{MaxRetries: 1})

	req := application.DecodeRequest{VIN: testVIN}
	cause := &application.DecoderError{StatusCode: http.StatusBadGateway, Message: "API request failed with status: 502"}
	mockDecoder.On("Decode", mock.Anything, req).Return(nil, cause).Once()

	_, err := retryClient.Decode(context.Background(), req)

	assert.Same(t, cause, err)
}

func TestRetryClient_RespectsContextCancellation(t *testing.T) {
	mockDecoder := mocks.NewMockDecoder(t, domain.ProviderNHTSA)
	retryClient := decoder.NewRetryClient(mockDecoder, config.RetryConfig{
		BaseDelay:  time.Second,
		MaxRetries: 10, // High retry count
	})

	req := application.DecodeRequest{VIN: testVIN}

	// First call fails
	mockDecoder.On("Decode", mock.Anything, req).Return(nil, &application.DecoderError{
		Code:       "internal_server_error",
		StatusCode: http.StatusInternalServerError,
	}).Once()

	ctx, cancel := context.WithCancel(context.Background())

	// Cancel while the client waits out its backoff
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res, err := retryClient.Decode(ctx, req)

	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, context.Canceled, err)
}

func TestRetryClient_HasAPIKey(t *testing.T) {
	keyed := decoder.NewRetryClient(decoder.NewNinjasClient("https://api.api-ninjas.com", "key", nil), retryCfg)
	keyless := decoder.NewRetryClient(decoder.NewNinjasClient("https://api.api-ninjas.com", "", nil), retryCfg)
	nhtsa := decoder.NewRetryClient(decoder.NewNHTSAClient("https://vpic.nhtsa.dot.gov", nil), retryCfg)

	assert.True(t, keyed.HasAPIKey())
	assert.False(t, keyless.HasAPIKey())
	assert.True(t, nhtsa.HasAPIKey())
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := config.DecoderConfig{
		NinjasBaseURL: "https://api.api-ninjas.com",
		NHTSABaseURL:  "https://vpic.nhtsa.dot.gov",
		ConnTimeout:   time.Second,
	}

	d, err := decoder.New(domain.ProviderNinjas, cfg, retryCfg)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderNinjas, d.Provider())

	d, err = decoder.New(domain.ProviderNHTSA, cfg, retryCfg)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderNHTSA, d.Provider())

	_, err = decoder.New("carfax", cfg, retryCfg)
	assert.Error(t, err)
}
