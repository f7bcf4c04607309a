package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/metinatakli/showtime-booking/api"
	"github.com/metinatakli/showtime-booking/internal/booking"
	"github.com/metinatakli/showtime-booking/internal/mocks"
	"github.com/metinatakli/showtime-booking/internal/validator"
	"github.com/stretchr/testify/mock"
)

type testRepos struct {
	tx        *mocks.MockTransactor
	showtimes *mocks.MockShowtimeRepo
	seats     *mocks.MockSeatRepo
	bookings  *mocks.MockBookingRepo
}

func newTestRepos() *testRepos {
	repos := &testRepos{
		tx:        new(mocks.MockTransactor),
		showtimes: new(mocks.MockShowtimeRepo),
		seats:     new(mocks.MockSeatRepo),
		bookings:  new(mocks.MockBookingRepo),
	}

	repos.tx.On("RunInTx", mock.Anything).Return(nil).Maybe()

	return repos
}

func (r *testRepos) assertExpectations(t *testing.T) {
	r.showtimes.AssertExpectations(t)
	r.seats.AssertExpectations(t)
	r.bookings.AssertExpectations(t)
}

func newTestApplication(repos *testRepos, opts ...func(*Application)) *Application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := &Application{
		config:         Config{Env: "test"},
		validator:      validator.NewValidator(),
		logger:         logger,
		sessionManager: scs.New(),
		coordinator: booking.NewCoordinator(
			logger,
			repos.tx,
			repos.showtimes,
			repos.seats,
			repos.bookings,
			booking.WithMaxSeatsPerBooking(maxSeats),
		),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func setupTestSession(t *testing.T, app *Application, r *http.Request, userId string) *http.Request {
	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response %+v",
				wantErrMessage, validationResp.ValidationErrors)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
