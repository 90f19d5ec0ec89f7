package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haribidda/TECHIEFOLIO/internal/markdown"
	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for canonical post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) (*models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost derives the sanitized HTML from the raw Markdown and persists the
// post. Every write path goes through the renderer here; callers never set
// SanitizedHTML themselves.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(post.BlogText) == "" {
		return &ValidationError{Field: "blog_text", Reason: "required"}
	}
	if post.AuthorID == "" {
		return &ValidationError{Field: "author_id", Reason: "required"}
	}

	post.SanitizedHTML = markdown.Render(post.BlogText)
	if strings.TrimSpace(post.SanitizedHTML) == "" {
		// Non-empty Markdown rendered to nothing: the sanitizer dropped the
		// whole document, which signals an encoding problem rather than a
		// user mistake. Refuse the write so it cannot go unnoticed.
		return &ValidationError{Field: "sanitized_html", Reason: "sanitizer produced empty output for non-empty source"}
	}

	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrPostNotFound, id)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves every post. The result carries no ordering guarantee;
// the feed assembler sorts for presentation.
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthor retrieves one author's posts, newest first. This is the
// canonical source for profile pages and cache reconciliation.
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost removes the canonical record and returns the deleted post so the
// caller can reconcile the owning user's denormalized list.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid id %q", ErrPostNotFound, id)
	}

	var deleted models.Post
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &deleted, nil
}
