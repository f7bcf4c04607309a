package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking/internal/app"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-test-secret"

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []*http.Cookie) *http.Request {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}

		switch nested := m[k].(type) {
		case map[string]any:
			cleanMap(nested)
		case []any:
			for _, item := range nested {
				if itemMap, ok := item.(map[string]any); ok {
					cleanMap(itemMap)
				}
			}
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err)
}

func resetState(t testing.TB, testApp *TestApp) {
	t.Helper()

	ctx := context.Background()

	_, err := testApp.DB.Exec(ctx, "TRUNCATE booking_seats, seats, bookings, showtimes, movies CASCADE")
	require.NoError(t, err)

	resetSeatMapCache(t, testApp)

	testApp.Publisher.Reset()
}

// resetSeatMapCache drops cached seat maps only, so session cookies issued
// before a scenario stay valid.
func resetSeatMapCache(t testing.TB, testApp *TestApp) {
	t.Helper()

	ctx := context.Background()

	keys, err := testApp.Redis.Keys(ctx, "seat_map*").Result()
	require.NoError(t, err)

	if len(keys) > 0 {
		require.NoError(t, testApp.Redis.Del(ctx, keys...).Err())
	}
}

// authenticatedUserCookies stores userID in a fresh session and returns the
// cookie that identifies it.
func authenticatedUserCookies(t testing.TB, testApp *TestApp, userID string) []*http.Cookie {
	t.Helper()

	ctx, err := testApp.SessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	testApp.SessionManager.Put(ctx, app.SessionKeyUserId.String(), userID)

	token, expiry, err := testApp.SessionManager.Commit(ctx)
	require.NoError(t, err)

	return []*http.Cookie{{
		Name:    testApp.SessionManager.Cookie.Name,
		Value:   token,
		Path:    "/",
		Expires: expiry,
	}}
}

func bearerHeaders(t testing.TB, subject string) map[string]string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + signed}
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(context.Background(), query, args...).Scan(&n))

	return n
}
