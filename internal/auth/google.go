package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauthapi "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const stateCookieName = "tf_oauth_state"

// GoogleProfile is the identity returned by the federated provider
type GoogleProfile struct {
	GoogleID string
	Email    string
	Name     string
}

// Google drives the Google OAuth code flow for federated sign-in
type Google struct {
	config *oauth2.Config
}

// NewGoogle builds the OAuth configuration for the Google endpoint
func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL generates a fresh state token and the consent-screen URL for it
func (g *Google) AuthURL() (url, state string, err error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	state = base64.RawURLEncoding.EncodeToString(buf)
	return g.config.AuthCodeURL(state), state, nil
}

// StateCookie wraps the state token for the round trip to the provider
func StateCookie(state string) *http.Cookie {
	return &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// StateFromCookie reads back the state token set before the redirect
func StateFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Exchange trades the callback code for a token and fetches the user's
// Google profile
func (g *Google) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	svc, err := oauthapi.NewService(ctx, option.WithTokenSource(g.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, err
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return &GoogleProfile{
		GoogleID: info.Id,
		Email:    info.Email,
		Name:     info.Name,
	}, nil
}
