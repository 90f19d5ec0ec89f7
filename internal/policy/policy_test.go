package policy

import (
	"testing"

	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanManage(t *testing.T) {
	post := &models.Post{AuthorID: "7"}

	tests := []struct {
		name     string
		viewerID string
		post     *models.Post
		want     bool
	}{
		{name: "author manages own post", viewerID: "7", post: post, want: true},
		{name: "other user is a visitor", viewerID: "8", post: post, want: false},
		{name: "anonymous viewer is a visitor", viewerID: "", post: post, want: false},
		{name: "nil post", viewerID: "7", post: nil, want: false},
		{name: "empty author id never matches empty viewer", viewerID: "", post: &models.Post{AuthorID: ""}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManage(tt.viewerID, tt.post))
		})
	}
}
