// Package policy decides what a viewer may do with a post. Decisions are pure
// functions of the viewer identity and the stored post; client-supplied
// ownership claims are never consulted.
package policy

import "github.com/haribidda/TECHIEFOLIO/internal/models"

// CanManage reports whether the viewer owns the post and may see management
// affordances (delete). An empty viewer id is an unauthenticated visitor and
// can never manage anything.
func CanManage(viewerID string, post *models.Post) bool {
	if viewerID == "" || post == nil {
		return false
	}
	return viewerID == post.AuthorID
}
