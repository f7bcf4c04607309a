package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/domain"
	appvalidator "github.com/metinatakli/showtime-booking/internal/validator"
)

const (
	ErrMsgInternalServer         = "The server encountered a problem and could not process your request"
	ErrMsgNotFound               = "The requested resource not found"
	ErrMsgMethodNotAllowed       = "The %s method is not supported for this resource"
	ErrMsgUnauthorized           = "You must be authenticated to access this resource"
	ErrMsgFailedValidation       = "One or more fields have invalid values"
	ErrMsgShowtimeNotFound       = "The requested showtime could not be found"
	ErrMsgSeatsNotFound          = "The showtime or one of the selected seats could not be found"
	ErrMsgSeatsNoLongerAvailable = "One or more selected seats are no longer available, please refresh the seat map"
	ErrMsgStoreUnavailable       = "The booking service is temporarily unavailable, please try again shortly"

	retryAfterSeconds = 2
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrMsgInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrMsgNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMsgMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *api.InvalidParamFormatError
	if errors.As(err, &paramErr) {
		app.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", paramErr.ParamName))
		return
	}

	app.badRequestResponse(w, r, err)
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrMsgUnauthorized)
}

func (app *Application) storeUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.contextGetLogger(r).Warn("booking store unavailable", "error", err)

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	app.errorResponse(w, r, http.StatusServiceUnavailable, ErrMsgStoreUnavailable)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.serverErrorResponse(w, r, err)
		return
	}

	details := make([]api.ValidationError, len(validationErrs))

	for i, fieldErr := range validationErrs {
		details[i] = api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		}
	}

	app.validationErrorResponse(w, r, details)
}

func (app *Application) validationErrorResponse(w http.ResponseWriter, r *http.Request, details []api.ValidationError) {
	resp := api.ValidationErrorResponse{
		Message:          ErrMsgFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: details,
	}

	err := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

// bookingErrorResponse maps the booking error taxonomy onto HTTP statuses.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrMissingIdentity):
		app.unauthorizedAccessResponse(w, r)
	case errors.Is(err, domain.ErrInvalidSelection):
		app.validationErrorResponse(w, r, []api.ValidationError{{
			Field: "seatIds",
			Issue: selectionIssue(err),
		}})
	case errors.Is(err, domain.ErrRecordNotFound):
		app.errorResponse(w, r, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrSeatsNoLongerAvailable):
		app.errorResponse(w, r, http.StatusConflict, ErrMsgSeatsNoLongerAvailable)
	case errors.Is(err, domain.ErrStoreUnavailable):
		app.storeUnavailableResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// selectionIssue strips the sentinel prefix from an invalid selection error,
// leaving the detail that describes what was wrong.
func selectionIssue(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrInvalidSelection.Error()+": ")
}
