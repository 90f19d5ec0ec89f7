package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/haribidda/TECHIEFOLIO/internal/auth"
	"github.com/haribidda/TECHIEFOLIO/internal/middleware"
	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"github.com/haribidda/TECHIEFOLIO/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	sessions       *auth.Sessions
	google         *auth.Google
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessions *auth.Sessions, google *auth.Google) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		sessions:       sessions,
		google:         google,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo) {
	e.GET("/", h.LoginPage)
	e.GET("/login", h.LoginPage)
	e.GET("/signup1", h.SignupPage)
	e.POST("/signup", h.Signup)
	e.POST("/signin", h.SignIn)
	e.GET("/logout", h.Logout)
	e.GET("/auth/google", h.GoogleLogin)
	e.GET("/auth/google/callback", h.GoogleCallback)
}

// LoginPage renders the sign-in form
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Authenticated": middleware.IsAuthenticated(c),
	})
}

// SignupPage renders the registration form
func (h *AuthHandler) SignupPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup1.html", nil)
}

// normalizeHandle collapses interior runs of whitespace and trims the ends
func normalizeHandle(handle string) string {
	return strings.Join(strings.Fields(handle), " ")
}

// Signup registers a local user with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Handle:   normalizeHandle(req.UserHandle),
		Email:    req.Username,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.sessions.Issue(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start session after signup")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// SignIn authenticates a local user with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByEmail(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	if err := h.sessions.Issue(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start session")
	}
	return c.Redirect(http.StatusSeeOther, "/home")
}

// Logout terminates the session
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

// GoogleLogin starts the federated sign-in flow
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	url, state, err := h.google.AuthURL()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start Google sign-in")
	}
	c.SetCookie(auth.StateCookie(state))
	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback finishes the federated flow: verify state, exchange the
// code, then find or create the matching local user
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	state := c.QueryParam("state")
	if state == "" || state != auth.StateFromCookie(c.Request()) {
		return echo.NewHTTPError(http.StatusBadRequest, "OAuth state mismatch")
	}

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing authorization code")
	}

	profile, err := h.google.Exchange(c.Request().Context(), code)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Google sign-in failed")
	}

	user, err := h.findOrCreateGoogleUser(profile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.sessions.Issue(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start session")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// findOrCreateGoogleUser resolves a Google profile to a local user: by
// federated id first, then by email (linking the id), creating the account
// when neither matches
func (h *AuthHandler) findOrCreateGoogleUser(profile *auth.GoogleProfile) (*models.User, error) {
	user, err := h.userRepository.GetUserByGoogleID(profile.GoogleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	user, err = h.userRepository.GetUserByEmail(profile.Email)
	if err == nil {
		user.GoogleID = profile.GoogleID
		if err := h.userRepository.UpdateUser(user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	handle := normalizeHandle(profile.Name)
	if handle == "" {
		handle = strings.SplitN(profile.Email, "@", 2)[0]
	}
	user = &models.User{
		Handle:   handle,
		Email:    profile.Email,
		GoogleID: profile.GoogleID,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}
