package middleware

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/cuisineai/pkg/auth"
	"github.com/shashiranjanraj/cuisineai/pkg/logger"
	"github.com/shashiranjanraj/cuisineai/pkg/response"
)

// Bodies sent when the session cookie is absent or fails verification.
const (
	MsgTokenMissing = "The token was not available"
	MsgTokenWrong   = "Token is wrong"
)

// RequireSession gates a route on a valid session cookie. Rejections carry
// the token message as a JSON string with status 401, or 200 when strict is
// false. The decoded claims are not passed on.
func RequireSession(sessions *auth.Sessions, strict bool) func(http.Handler) http.Handler {
	status := http.StatusUnauthorized
	if !strict {
		status = http.StatusOK
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(auth.CookieName); err == nil {
				token = c.Value
			}

			if _, err := sessions.Verify(token); err != nil {
				msg := MsgTokenWrong
				if errors.Is(err, auth.ErrTokenMissing) {
					msg = MsgTokenMissing
				}
				logger.WithCtx(r.Context()).Debug("session rejected", "error", err)
				response.JSON(w, status, msg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
