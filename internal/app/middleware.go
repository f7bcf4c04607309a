package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		next.ServeHTTP(w, app.contextSetLogger(r, logger))
	})
}

// requireAuthentication resolves the caller from the shared session first and
// from a bearer token second. Requests carrying neither are rejected.
func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := app.sessionManager.GetString(r.Context(), SessionKeyUserId.String())

		if userId == "" {
			var err error

			userId, err = app.bearerSubject(r)
			if err != nil {
				app.contextGetLogger(r).Debug("rejected bearer token", "error", err)
			}
		}

		if userId == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		r = app.contextSetUserId(r, userId)
		r = app.contextSetLogger(r, app.contextGetLogger(r).With("user_id", userId))

		next.ServeHTTP(w, r)
	})
}

func (app *Application) bearerSubject(r *http.Request) (string, error) {
	if app.config.Auth.JWTSecret == "" {
		return "", nil
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", nil
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}

	if app.config.Auth.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(app.config.Auth.JWTIssuer))
	}

	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(app.config.Auth.JWTSecret), nil
	}, opts...)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}
