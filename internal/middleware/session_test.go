package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haribidda/TECHIEFOLIO/internal/auth"
	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCookie(t *testing.T, sessions *auth.Sessions, user *models.User) *http.Cookie {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/signin", nil), rec)
	require.NoError(t, sessions.Issue(c, user))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestLoadSessionSetsViewerIdentity(t *testing.T) {
	e := echo.New()
	sessions := auth.NewSessions("test-secret")
	cookie := issueCookie(t, sessions, &models.User{ID: 9, Email: "jane@example.com"})

	handler := LoadSession(sessions)(func(c echo.Context) error {
		assert.True(t, IsAuthenticated(c))
		assert.Equal(t, uint(9), UserID(c))
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(cookie)
	c := e.NewContext(req, httptest.NewRecorder())
	require.NoError(t, handler(c))
}

func TestLoadSessionAnonymous(t *testing.T) {
	e := echo.New()
	sessions := auth.NewSessions("test-secret")

	handler := LoadSession(sessions)(func(c echo.Context) error {
		assert.False(t, IsAuthenticated(c))
		assert.Zero(t, UserID(c))
		return c.NoContent(http.StatusOK)
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/home", nil), httptest.NewRecorder())
	require.NoError(t, handler(c))
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("rejects visitors", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/compose", nil), httptest.NewRecorder())
		c.Set(CtxAuthenticated, false)

		err := RequireAuth()(next)(c)
		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("passes authenticated sessions", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/compose", nil), rec)
		c.Set(CtxAuthenticated, true)
		c.Set(CtxUserID, uint(1))

		require.NoError(t, RequireAuth()(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
