package api

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Decode a VIN
	// (GET /api/v1/vins/{vin})
	DecodeVIN(w http.ResponseWriter, r *http.Request, vin string, params DecodeVINParams)
	// Decode a VIN from a JSON body
	// (POST /api/v1/decode)
	DecodeVehicle(w http.ResponseWriter, r *http.Request, params DecodeVehicleParams)
	// (GET /api/v1/lookups)
	ListLookups(w http.ResponseWriter, r *http.Request, params ListLookupsParams)
	// (GET /api/v1/lookups/{id})
	GetLookup(w http.ResponseWriter, r *http.Request, id string)
	// (GET /healthz)
	Healthz(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts requests to typed parameters.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError is returned when a parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

func (siw *ServerInterfaceWrapper) DecodeVIN(w http.ResponseWriter, r *http.Request) {
	var err error

	var vin string
	err = runtime.BindStyledParameterWithOptions("simple", "vin", r.PathValue("vin"), &vin,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "vin", Err: err})
		return
	}

	var params DecodeVINParams

	err = runtime.BindQueryParameter("form", true, false, "provider", r.URL.Query(), &params.Provider)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "provider", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "no_cache", r.URL.Query(), &params.NoCache)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "no_cache", Err: err})
		return
	}

	params.XApiKey, err = bindAPIKeyHeader(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "X-Api-Key", Err: err})
		return
	}

	siw.Handler.DecodeVIN(w, r, vin, params)
}

func (siw *ServerInterfaceWrapper) DecodeVehicle(w http.ResponseWriter, r *http.Request) {
	var params DecodeVehicleParams

	apiKey, err := bindAPIKeyHeader(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "X-Api-Key", Err: err})
		return
	}
	params.XApiKey = apiKey

	siw.Handler.DecodeVehicle(w, r, params)
}

func (siw *ServerInterfaceWrapper) ListLookups(w http.ResponseWriter, r *http.Request) {
	var err error
	var params ListLookupsParams

	err = runtime.BindQueryParameter("form", true, false, "vin", r.URL.Query(), &params.Vin)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "vin", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "offset", r.URL.Query(), &params.Offset)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "offset", Err: err})
		return
	}

	siw.Handler.ListLookups(w, r, params)
}

func (siw *ServerInterfaceWrapper) GetLookup(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", r.PathValue("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.Handler.GetLookup(w, r, id)
}

func (siw *ServerInterfaceWrapper) Healthz(w http.ResponseWriter, r *http.Request) {
	siw.Handler.Healthz(w, r)
}

func bindAPIKeyHeader(r *http.Request) (*string, error) {
	values := r.Header.Values("X-Api-Key")
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) > 1 {
		return nil, fmt.Errorf("expected one value for X-Api-Key, got %d", len(values))
	}

	var key string
	err := runtime.BindStyledParameterWithOptions("simple", "X-Api-Key", values[0], &key,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// HandlerFromMux registers the routes of si on mux. errorHandler handles
// parameter binding failures.
func HandlerFromMux(si ServerInterface, mux *http.ServeMux, errorHandler func(w http.ResponseWriter, r *http.Request, err error)) http.Handler {
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: errorHandler,
	}

	mux.HandleFunc("GET /api/v1/vins/{vin}", wrapper.DecodeVIN)
	mux.HandleFunc("POST /api/v1/decode", wrapper.DecodeVehicle)
	mux.HandleFunc("GET /api/v1/lookups", wrapper.ListLookups)
	mux.HandleFunc("GET /api/v1/lookups/{id}", wrapper.GetLookup)
	mux.HandleFunc("GET /healthz", wrapper.Healthz)

	return mux
}
