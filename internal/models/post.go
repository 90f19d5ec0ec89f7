package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a blog post stored canonically in MongoDB. SanitizedHTML is derived
// from BlogText by the post repository on every write; nothing else may set it.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description" bson:"description"`
	BlogText      string             `json:"blog_text" bson:"blog_text"`
	SanitizedHTML string             `json:"sanitized_html" bson:"sanitized_html"`
	Account       string             `json:"account" bson:"account"` // author display handle
	Email         string             `json:"email" bson:"email"`
	AuthorID      string             `json:"author_id" bson:"author_id"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// ComposePostRequest defines the compose form fields
type ComposePostRequest struct {
	Title    string `form:"postTitle" validate:"required,min=1,max=200"`
	Body     string `form:"postBody" validate:"max=500"`
	Markdown string `form:"postMarkdown" validate:"required,min=1"`
}

// DeletePostRequest defines the delete form fields
type DeletePostRequest struct {
	PostID string `form:"postId" validate:"required"`
}
