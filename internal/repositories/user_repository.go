package repositories

import (
	"errors"

	"github.com/haribidda/TECHIEFOLIO/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByGoogleID(googleID string) (*models.User, error)
	UpdateUser(user *models.User) error
	AppendOwnedPost(userID uint, copy models.OwnedPost) error
	RemoveOwnedPost(userID uint, postID string) error
	SyncOwnedPosts(userID uint, copies []models.OwnedPost) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL. A duplicate email maps to
// ErrEmailTaken whether it is caught by the lookup or by the unique index.
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	var existing models.User
	err := r.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// GetUserByID retrieves a user by ID, with the owned-post list preloaded in
// insertion order.
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Posts", func(db *gorm.DB) *gorm.DB {
		return db.Order("owned_posts.id ASC")
	}).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByGoogleID retrieves a user by their federated Google identity
func (r *PostgresUserRepository) GetUserByGoogleID(googleID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// AppendOwnedPost pushes a denormalized post copy onto the user's list
func (r *PostgresUserRepository) AppendOwnedPost(userID uint, copy models.OwnedPost) error {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	copy.UserID = userID
	return r.db.Create(&copy).Error
}

// RemoveOwnedPost removes the first copy matching postID from the user's
// list. The list is expected to hold at most one copy per post id.
func (r *PostgresUserRepository) RemoveOwnedPost(userID uint, postID string) error {
	var copy models.OwnedPost
	err := r.db.Where("user_id = ? AND post_id = ?", userID, postID).
		Order("id ASC").First(&copy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // already absent, nothing to reconcile
		}
		return err
	}
	return r.db.Delete(&copy).Error
}

// SyncOwnedPosts replaces the user's denormalized list with copies rebuilt
// from the canonical store. Used by the profile read path to repair drift
// left behind by a failed compose or delete.
func (r *PostgresUserRepository) SyncOwnedPosts(userID uint, copies []models.OwnedPost) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.OwnedPost{}).Error; err != nil {
			return err
		}
		for i := range copies {
			copies[i].UserID = userID
			copies[i].ID = 0
			if err := tx.Create(&copies[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
