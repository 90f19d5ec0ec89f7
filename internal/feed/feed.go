// Package feed turns the unordered canonical post set into the global
// reverse-chronological feed shown on the home page.
package feed

import (
	"sort"

	"github.com/haribidda/TECHIEFOLIO/internal/models"
)

// Viewer is the identity context a page is rendered for
type Viewer struct {
	Authenticated bool
	UserID        string // empty for visitors
}

// Page is an assembled feed ready for rendering
type Page struct {
	Posts  []models.Post
	Viewer Viewer
}

// Assemble sorts posts most-recent-first and attaches the viewer context.
// The sort is stable so equal timestamps keep their input order. The feed is
// global: no filtering by ownership happens here.
func Assemble(posts []models.Post, viewer Viewer) Page {
	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return Page{Posts: sorted, Viewer: viewer}
}
