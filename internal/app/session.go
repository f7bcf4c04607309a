package app

import (
	"context"
	"log/slog"
	"net/http"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
)

func (s sessionKey) String() string {
	return string(s)
}

type contextKey string

const loggerContextKey = contextKey("logger")

func (app *Application) contextSetUserId(r *http.Request, userId string) *http.Request {
	ctx := context.WithValue(r.Context(), SessionKeyUserId, userId)
	return r.WithContext(ctx)
}

// contextGetUserId returns the caller identity stored by requireAuthentication,
// or an empty string when the route is not authenticated.
func (app *Application) contextGetUserId(r *http.Request) string {
	userId, _ := r.Context().Value(SessionKeyUserId).(string)
	return userId
}

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
