package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/haribidda/TECHIEFOLIO/internal/feed"
	"github.com/haribidda/TECHIEFOLIO/internal/middleware"
	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"github.com/haribidda/TECHIEFOLIO/internal/policy"
	"github.com/haribidda/TECHIEFOLIO/internal/repositories"
	"github.com/labstack/echo/v4"
)

// PageHandler serves the server-rendered blog pages
type PageHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PageHandler {
	return &PageHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPageRoutes registers the blog page routes
func (h *PageHandler) RegisterPageRoutes(e *echo.Echo) {
	e.GET("/home", h.Home)
	e.GET("/about", h.About)
	e.GET("/posts/:postId", h.ShowPost)
	e.GET("/compose", h.ComposeForm, middleware.RequireAuth())
	e.POST("/compose", h.Compose, middleware.RequireAuth())
	e.GET("/profile", h.Profile, middleware.RequireAuth())
	e.POST("/delete", h.Delete, middleware.RequireAuth())
}

// viewerID is the string form of the session user id, matching Post.AuthorID.
// Empty for anonymous visitors.
func viewerID(c echo.Context) string {
	if !middleware.IsAuthenticated(c) {
		return ""
	}
	return strconv.FormatUint(uint64(middleware.UserID(c)), 10)
}

// Home renders the global feed, most recent post first
func (h *PageHandler) Home(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := feed.Assemble(posts, feed.Viewer{
		Authenticated: middleware.IsAuthenticated(c),
		UserID:        viewerID(c),
	})
	return c.Render(http.StatusOK, "home.html", page)
}

// About renders the static about page
func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", echo.Map{
		"Authenticated": middleware.IsAuthenticated(c),
	})
}

// ComposeForm renders the compose form
func (h *PageHandler) ComposeForm(c echo.Context) error {
	return c.Render(http.StatusOK, "compose.html", echo.Map{
		"Authenticated": true,
	})
}

// Compose creates a post from the submitted Markdown and appends the
// denormalized copy to the author's list
func (h *PageHandler) Compose(c echo.Context) error {
	var req models.ComposePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		Title:       req.Title,
		Description: req.Body,
		BlogText:    req.Markdown,
		Account:     user.Handle,
		Email:       user.Email,
		AuthorID:    strconv.FormatUint(uint64(user.ID), 10),
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		var verr *repositories.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Second, independent write: the canonical post exists even if this
	// append fails. The profile read path repairs the drift, so log and
	// carry on rather than failing the whole request.
	ownedCopy := models.OwnedPost{
		PostID:        post.ID.Hex(),
		Title:         post.Title,
		Description:   post.Description,
		SanitizedHTML: post.SanitizedHTML,
		PostedAt:      post.CreatedAt,
	}
	if err := h.userRepository.AppendOwnedPost(user.ID, ownedCopy); err != nil {
		log.Printf("compose: post %s created but owner copy append failed: %v", post.ID.Hex(), err)
	}

	return c.Redirect(http.StatusSeeOther, "/home")
}

// Profile lists the requesting user's own posts. The canonical store is the
// displayed truth; the denormalized copy list is repaired when it has drifted.
func (h *PageHandler) Profile(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	canonical, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), viewerID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if cacheDrifted(user.Posts, canonical) {
		copies := make([]models.OwnedPost, 0, len(canonical))
		// Canonical comes newest-first; store the copies oldest-first so
		// insertion order matches creation order.
		for i := len(canonical) - 1; i >= 0; i-- {
			p := canonical[i]
			copies = append(copies, models.OwnedPost{
				PostID:        p.ID.Hex(),
				Title:         p.Title,
				Description:   p.Description,
				SanitizedHTML: p.SanitizedHTML,
				PostedAt:      p.CreatedAt,
			})
		}
		if err := h.userRepository.SyncOwnedPosts(user.ID, copies); err != nil {
			log.Printf("profile: cache repair for user %d failed: %v", user.ID, err)
		} else {
			log.Printf("profile: repaired drifted post cache for user %d (%d posts)", user.ID, len(copies))
		}
	}

	return c.Render(http.StatusOK, "profile.html", echo.Map{
		"UserName":      user.Handle,
		"Posts":         canonical,
		"Authenticated": true,
		"Visitor":       false,
	})
}

// cacheDrifted reports whether the denormalized copies no longer mirror the
// canonical post set
func cacheDrifted(copies []models.OwnedPost, canonical []models.Post) bool {
	if len(copies) != len(canonical) {
		return true
	}
	ids := make(map[string]bool, len(canonical))
	for _, p := range canonical {
		ids[p.ID.Hex()] = true
	}
	for _, cp := range copies {
		if !ids[cp.PostID] {
			return true
		}
	}
	return false
}

// ShowPost renders a single post, choosing the owner or visitor variant
func (h *PageHandler) ShowPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("postId"))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "post.html", echo.Map{
		"Post":          post,
		"Visitor":       !policy.CanManage(viewerID(c), post),
		"Authenticated": middleware.IsAuthenticated(c),
	})
}

// Delete removes a post after re-checking ownership against the session,
// then reconciles the owner's denormalized list
func (h *PageHandler) Delete(c echo.Context) error {
	var req models.DeletePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Ownership comes from the session and the stored post, never from the
	// form body.
	if !policy.CanManage(viewerID(c), post) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this post")
	}

	deleted, err := h.postRepository.DeletePost(c.Request().Context(), req.PostID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ownerID, err := strconv.ParseUint(deleted.AuthorID, 10, 64)
	if err != nil {
		log.Printf("delete: post %s had malformed author id %q", req.PostID, deleted.AuthorID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to reconcile owner's post list")
	}
	if err := h.userRepository.RemoveOwnedPost(uint(ownerID), req.PostID); err != nil {
		log.Printf("delete: post %s removed but owner copy removal failed: %v", req.PostID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Post deleted but reconciling the owner's list failed")
	}

	return c.Redirect(http.StatusSeeOther, "/profile")
}
