// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vinyls/internal/cache"
	"vinyls/internal/models"
	"vinyls/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	ListRandomExcluding(ctx context.Context, excludeID uint, limit int) ([]models.User, error)
	SearchByUsername(ctx context.Context, query string) ([]models.User, error)
	UpdateConnection(ctx context.Context, id uint, status string) error
}

type userRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db:     db,
		logger: observability.NewRepoLogger("users"),
	}
}

// cachedUser is the cache image of a User. The API model hides the password
// hash from JSON, so the cache round trip needs its own form that keeps
// every column.
type cachedUser struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Password      string    `json:"password"`
	ImgProfileURL string    `json:"imgProfileUrl"`
	Bio           string    `json:"bio"`
	Connection    string    `json:"connection"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newCachedUser(u *models.User) cachedUser {
	return cachedUser{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Password:      u.Password,
		ImgProfileURL: u.ImgProfileURL,
		Bio:           u.Bio,
		Connection:    u.Connection,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (c cachedUser) user() models.User {
	return models.User{
		ID:            c.ID,
		Email:         c.Email,
		Username:      c.Username,
		Password:      c.Password,
		ImgProfileURL: c.ImgProfileURL,
		Bio:           c.Bio,
		Connection:    c.Connection,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var cached cachedUser
	key := cache.UserKey(id)

	err := cache.CacheAside(ctx, key, &cached, cache.UserTTL, func() error {
		defer observability.TrackQuery("get_by_id", "users")()
		var user models.User
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
			}
			return models.NewInternalError(err)
		}
		r.logger.LogRead(ctx, map[string]interface{}{"user_id": id})
		cached = newCachedUser(&user)
		return nil
	})

	if err != nil {
		return nil, err
	}
	user := cached.user()
	return &user, nil
}

// GetByEmail returns nil, nil when no user carries the email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByUsername returns nil, nil when no user carries the username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("create", "users")()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewAlreadyExistsError(fmt.Sprintf("username %s already registered", user.Username))
		}
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{"user_id": user.ID})
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewAlreadyExistsError(fmt.Sprintf("username %s already exists", user.Username))
		}
		r.logger.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.logger.LogUpdate(ctx, map[string]interface{}{"user_id": user.ID})
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// ListRandomExcluding samples up to limit users, leaving out excludeID.
// RANDOM() is understood by both postgres and sqlite.
func (r *userRepository) ListRandomExcluding(ctx context.Context, excludeID uint, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("id != ?", excludeID).
		Order("RANDOM()").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) SearchByUsername(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE LOWER(?)", "%"+query+"%").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) UpdateConnection(ctx context.Context, id uint, status string) error {
	defer observability.TrackQuery("update_connection", "users")()
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("connection", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
