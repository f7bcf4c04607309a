package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /healthcheck)
	GetHealth(w http.ResponseWriter, r *http.Request)
	// (GET /showtimes/{showtimeId}/seats)
	GetSeatMapByShowtime(w http.ResponseWriter, r *http.Request, showtimeId openapi_types.UUID)
	// (POST /showtimes/{showtimeId}/bookings)
	CreateBooking(w http.ResponseWriter, r *http.Request, showtimeId openapi_types.UUID)
	// (GET /users/me/bookings)
	GetBookingsOfUser(w http.ResponseWriter, r *http.Request, params GetBookingsOfUserParams)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts chi contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// GetHealth operation middleware
func (siw *ServerInterfaceWrapper) GetHealth(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetHealth(w, r)
	})
}

// GetSeatMapByShowtime operation middleware
func (siw *ServerInterfaceWrapper) GetSeatMapByShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeId, err := bindShowtimeId(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetSeatMapByShowtime(w, r, showtimeId)
	})
}

// CreateBooking operation middleware
func (siw *ServerInterfaceWrapper) CreateBooking(w http.ResponseWriter, r *http.Request) {
	showtimeId, err := bindShowtimeId(r)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, err)
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.CreateBooking(w, r, showtimeId)
	})
}

// GetBookingsOfUser operation middleware
func (siw *ServerInterfaceWrapper) GetBookingsOfUser(w http.ResponseWriter, r *http.Request) {
	var params GetBookingsOfUserParams

	err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &params.Page)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "page", Err: err})
		return
	}

	err = runtime.BindQueryParameter("form", true, false, "pageSize", r.URL.Query(), &params.PageSize)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "pageSize", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetBookingsOfUser(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r)
}

func bindShowtimeId(r *http.Request) (openapi_types.UUID, error) {
	var showtimeId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "showtimeId", chi.URLParam(r, "showtimeId"), &showtimeId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return showtimeId, &InvalidParamFormatError{ParamName: "showtimeId", Err: err}
	}

	return showtimeId, nil
}

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
