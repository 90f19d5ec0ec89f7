package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"github.com/labstack/echo/v4"
)

const sessionCookieName = "tf_session"

// Sessions issues and verifies the signed session cookie. The cookie claims
// are the only source of viewer identity; handlers never trust ownership
// fields sent by the client.
type Sessions struct {
	secret []byte
	ttl    time.Duration
}

// NewSessions creates a session manager signing with the given secret
func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: 72 * time.Hour}
}

// Issue signs a session token for the user and sets it as an HttpOnly cookie
func (s *Sessions) Issue(c echo.Context, user *models.User) error {
	claims := &models.SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(s.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Claims parses and verifies the session cookie. It returns nil without error
// when no session is present or the token fails verification; an absent
// session is an anonymous visitor, not a failure.
func (s *Sessions) Claims(c echo.Context) *models.SessionClaims {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// Clear expires the session cookie
func (s *Sessions) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
