package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/haribidda/TECHIEFOLIO/internal/markdown"
	"github.com/haribidda/TECHIEFOLIO/internal/middleware"
	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"github.com/haribidda/TECHIEFOLIO/internal/render"
	"github.com/haribidda/TECHIEFOLIO/internal/repositories"
	"github.com/haribidda/TECHIEFOLIO/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePostRepo is an in-memory PostRepository. It mirrors the Mongo
// implementation's contract, including deriving SanitizedHTML on create.
type fakePostRepo struct {
	posts map[string]*models.Post
	order []string
	clock time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[string]*models.Post),
		clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return &repositories.ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(post.BlogText) == "" {
		return &repositories.ValidationError{Field: "blog_text", Reason: "required"}
	}
	if post.AuthorID == "" {
		return &repositories.ValidationError{Field: "author_id", Reason: "required"}
	}
	post.SanitizedHTML = markdown.Render(post.BlogText)
	if strings.TrimSpace(post.SanitizedHTML) == "" {
		return &repositories.ValidationError{Field: "sanitized_html", Reason: "sanitizer produced empty output for non-empty source"}
	}
	post.ID = primitive.NewObjectID()
	r.clock = r.clock.Add(time.Minute)
	post.CreatedAt = r.clock
	r.posts[post.ID.Hex()] = post
	r.order = append(r.order, post.ID.Hex())
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return post, nil
}

func (r *fakePostRepo) GetAllPosts(_ context.Context) ([]models.Post, error) {
	out := make([]models.Post, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.posts[id])
	}
	return out, nil
}

func (r *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	var out []models.Post
	for i := len(r.order) - 1; i >= 0; i-- { // newest first
		if p := r.posts[r.order[i]]; p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return post, nil
}

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByGoogleID(googleID string) (*models.User, error) {
	for _, u := range r.users {
		if u.GoogleID != "" && u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) AppendOwnedPost(userID uint, copy models.OwnedPost) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	copy.UserID = userID
	user.Posts = append(user.Posts, copy)
	return nil
}

func (r *fakeUserRepo) RemoveOwnedPost(userID uint, postID string) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for i, cp := range user.Posts {
		if cp.PostID == postID {
			user.Posts = append(user.Posts[:i], user.Posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) SyncOwnedPosts(userID uint, copies []models.OwnedPost) error {
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for i := range copies {
		copies[i].UserID = userID
	}
	user.Posts = copies
	return nil
}

// newTestEcho builds an echo instance with the real templates and validator
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := render.New()
	require.NoError(t, err)
	e.Renderer = renderer
	e.Validator = validators.NewValidator()
	return e
}

// formRequest builds a context around a urlencoded form POST
func formRequest(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// getRequest builds a context around a GET
func getRequest(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asUser marks the context as an authenticated session for the given user,
// the way the session middleware would
func asUser(c echo.Context, id uint) {
	c.Set(middleware.CtxAuthenticated, true)
	c.Set(middleware.CtxUserID, id)
}

// asVisitor marks the context as anonymous
func asVisitor(c echo.Context) {
	c.Set(middleware.CtxAuthenticated, false)
}
