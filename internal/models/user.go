package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Handle     string `json:"handle"`
	Email      string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password   string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	GoogleID   string `json:"google_id,omitempty" gorm:"index"`
	// Posts is a denormalized copy of the user's posts, kept in insertion
	// order. The canonical record lives in the Mongo posts collection; this
	// list is advisory and repaired from the canonical store on profile reads.
	Posts []OwnedPost `json:"posts" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// OwnedPost is the denormalized per-user copy of a canonical post
type OwnedPost struct {
	gorm.Model    `json:"-"`
	UserID        uint      `json:"-" gorm:"index"`
	PostID        string    `json:"post_id" gorm:"index"` // hex of the canonical Mongo _id
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SanitizedHTML string    `json:"sanitized_html"`
	PostedAt      time.Time `json:"posted_at"`
}

type SignupRequest struct {
	Username   string `form:"username" validate:"required,email"`
	UserHandle string `form:"userhandle" validate:"required,min=2,max=50"`
	Password   string `form:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Username string `form:"username" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// SessionClaims are custom claims extending standard jwt.RegisteredClaims
type SessionClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
