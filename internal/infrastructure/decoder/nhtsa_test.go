package decoder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
	"github.com/DanielPopoola/vin-gateway/internal/infrastructure/decoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nhtsaOK = `{
  "Count": 6,
  "Message": "Results returned successfully. NOTE: Any missing decoded values should be interpreted as NHTSA does not have data on the specific variable.",
  "SearchCriteria": "VIN:1HGCM82633A004352",
  "Results": [
    {"Value": "0", "ValueId": "0", "Variable": "Error Code", "VariableId": 143},
    {"Value": "HONDA", "ValueId": "474", "Variable": "Make", "VariableId": 26},
    {"Value": "Accord", "ValueId": "1861", "Variable": "Model", "VariableId": 28},
    {"Value": "2003", "ValueId": "", "Variable": "Model Year", "VariableId": 29},
    {"Value": null, "ValueId": null, "Variable": "Series", "VariableId": 34},
    {"Value": "Not Applicable", "ValueId": "0", "Variable": "Trim", "VariableId": 38}
  ]
}`

func newNHTSA(t *testing.T, handler http.HandlerFunc) *decoder.NHTSAClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return decoder.NewNHTSAClient(srv.URL, decoder.NewHTTPClient(5*time.Second))
}

func TestNHTSAClient_Decode_Success(t *testing.T) {
	client := newNHTSA(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vehicles/decodevin/1HGCM82633A004352", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Empty(t, r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(nhtsaOK))
	})

	res, err := client.Decode(context.Background(), application.DecodeRequest{VIN: testVIN, APIKey: "ignored"})

	require.NoError(t, err)
	require.Len(t, res.Records, 6)
	assert.Equal(t, "", res.Records[4].Value, "null values become empty strings")

	attrs := res.Attributes(domain.ProviderNHTSA)
	require.Len(t, attrs, 3)
	assert.Equal(t, "Make", attrs[0].Key)
	assert.Equal(t, "Model", attrs[1].Key)
	assert.Equal(t, "Model Year", attrs[2].Key)
}

func TestNHTSAClient_Decode_NonZeroErrorCode(t *testing.T) {
	client := newNHTSA(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"Count": 2, "Message": "Results returned successfully", "SearchCriteria": "VIN:1HGCM82633A004353",
			"Results": [
				{"Value": "1", "ValueId": "1", "Variable": "Error Code", "VariableId": 143},
				{"Value": "1 - Check Digit (9th position) does not calculate properly", "ValueId": "", "Variable": "Error Text", "VariableId": 191}
			]
		}`))
	})

	_, err := client.Decode(context.Background(), application.DecodeRequest{VIN: "1HGCM82633A004353"})

	decErr, ok := application.IsDecoderError(err)
	require.True(t, ok)
	assert.Equal(t, "nhtsa_error_1", decErr.Code)
	assert.Equal(t, "1 - Check Digit (9th position) does not calculate properly", decErr.Message)
	assert.False(t, decErr.IsRetryable())
}

func TestNHTSAClient_Decode_ErrorCodeWithoutText(t *testing.T) {
	client := newNHTSA(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Count": 1, "Message": "", "Results": [{"Value": "11", "Variable": "Error Code", "VariableId": 143}]}`))
	})

	_, err := client.Decode(context.Background(), application.DecodeRequest{VIN: testVIN})

	require.Error(t, err)
	assert.Equal(t, "NHTSA returned error code 11", application.UserMessage(err))
}

func TestNHTSAClient_Decode_HTTPError(t *testing.T) {
	client := newNHTSA(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Decode(context.Background(), application.DecodeRequest{VIN: testVIN})

	decErr, ok := application.IsDecoderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, decErr.StatusCode)
	assert.Equal(t, "API request failed with status: 500", decErr.Message)
}

func TestNHTSAClient_Decode_EmptyResults(t *testing.T) {
	client := newNHTSA(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Count": 0, "Message": "", "Results": []}`))
	})

	res, err := client.Decode(context.Background(), application.DecodeRequest{VIN: testVIN})

	require.NoError(t, err)
	assert.Empty(t, res.Attributes(domain.ProviderNHTSA))
}
