package middleware

import (
	"net/http"

	"github.com/haribidda/TECHIEFOLIO/internal/auth"
	"github.com/labstack/echo/v4"
)

// Context keys set by LoadSession
const (
	CtxAuthenticated = "authenticated"
	CtxUserID        = "userID"
	CtxUserEmail     = "userEmail"
)

// LoadSession parses the session cookie when present and stores the viewer
// identity in the request context. Anonymous requests pass through as
// visitors; nothing is rejected here.
func LoadSession(sessions *auth.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := sessions.Claims(c)
			if claims != nil {
				c.Set(CtxAuthenticated, true)
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxUserEmail, claims.Email)
			} else {
				c.Set(CtxAuthenticated, false)
			}
			return next(c)
		}
	}
}

// RequireAuth rejects requests without a valid session. It expects
// LoadSession to have run first.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ok, _ := c.Get(CtxAuthenticated).(bool); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Please login first.")
			}
			return next(c)
		}
	}
}

// IsAuthenticated reports the viewer state set by LoadSession
func IsAuthenticated(c echo.Context) bool {
	ok, _ := c.Get(CtxAuthenticated).(bool)
	return ok
}

// UserID returns the session user's id, or zero for visitors
func UserID(c echo.Context) uint {
	id, _ := c.Get(CtxUserID).(uint)
	return id
}
