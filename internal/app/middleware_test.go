package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func signedToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestRequireAuthentication(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "jwt-user",
		Issuer:    "auth-service",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	tests := []struct {
		name       string
		sessionId  string
		authHeader string
		wantStatus int
		wantUserId string
	}{
		{
			name:       "rejects anonymous requests",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "accepts a session user",
			sessionId:  "session-user",
			wantStatus: http.StatusOK,
			wantUserId: "session-user",
		},
		{
			name:       "prefers the session over a bearer token",
			sessionId:  "session-user",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), valid),
			wantStatus: http.StatusOK,
			wantUserId: "session-user",
		},
		{
			name:       "accepts a valid bearer token",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), valid),
			wantStatus: http.StatusOK,
			wantUserId: "jwt-user",
		},
		{
			name:       "rejects a token signed with another secret",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejects an expired token",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), expired),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejects a token without expiry",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), noExpiry),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejects a token from another issuer",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte(testJWTSecret), wrongIssuer),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejects a token using an unexpected algorithm",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS512, []byte(testJWTSecret), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejects other authorization schemes",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(newTestRepos(), func(a *Application) {
				a.config.Auth = AuthConfig{JWTSecret: testJWTSecret, JWTIssuer: "auth-service"}
			})

			var gotUserId string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserId = app.contextGetUserId(r)
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodGet, "/users/me/bookings", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}

			if tt.sessionId != "" {
				r = setupTestSession(t, app, r, tt.sessionId)
			} else {
				ctx, err := app.sessionManager.Load(r.Context(), "")
				require.NoError(t, err)
				r = r.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			app.requireAuthentication(next).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUserId, gotUserId)
		})
	}
}

func TestRequireAuthentication_BearerDisabledWithoutSecret(t *testing.T) {
	app := newTestApplication(newTestRepos())

	claims := jwt.RegisteredClaims{
		Subject:   "jwt-user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	r := httptest.NewRequest(http.MethodGet, "/users/me/bookings", nil)
	r.Header.Set("Authorization", "Bearer "+signedToken(t, jwt.SigningMethodHS256, []byte(""), claims))

	ctx, err := app.sessionManager.Load(r.Context(), "")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	app.requireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be called")
	})).ServeHTTP(w, r.WithContext(ctx))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication(newTestRepos())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "close", w.Header().Get("Connection"))
	checkErrorResponse(t, w, http.StatusInternalServerError, ErrMsgInternalServer)
}
