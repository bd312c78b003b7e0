package repository

import (
	"context"
	"errors"
	"fmt"

	"vinyls/internal/cache"
	"vinyls/internal/models"
	"vinyls/internal/observability"

	"gorm.io/gorm"
)

// VinylRepository defines persistence operations for vinyls.
type VinylRepository interface {
	Create(ctx context.Context, vinyl *models.Vinyl) error
	GetByID(ctx context.Context, id uint) (*models.Vinyl, error)
	Update(ctx context.Context, vinyl *models.Vinyl) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]models.Vinyl, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.Vinyl, error)
	ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.Vinyl, error)
	ListLikedBy(ctx context.Context, userID uint) ([]models.Vinyl, error)
	Search(ctx context.Context, query string) ([]models.Vinyl, error)
}

type vinylRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewVinylRepository returns a new VinylRepository implementation.
func NewVinylRepository(db *gorm.DB) VinylRepository {
	return &vinylRepository{
		db:     db,
		logger: observability.NewRepoLogger("vinyls"),
	}
}

func (r *vinylRepository) Create(ctx context.Context, vinyl *models.Vinyl) error {
	defer observability.TrackQuery("create", "vinyls")()
	if err := r.db.WithContext(ctx).Create(vinyl).Error; err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{"vinyl_id": vinyl.ID, "user_id": vinyl.UserID})
	return nil
}

func (r *vinylRepository) GetByID(ctx context.Context, id uint) (*models.Vinyl, error) {
	var vinyl models.Vinyl
	key := cache.VinylKey(id)

	err := cache.CacheAside(ctx, key, &vinyl, cache.VinylTTL, func() error {
		defer observability.TrackQuery("get_by_id", "vinyls")()
		if err := r.db.WithContext(ctx).First(&vinyl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError(fmt.Sprintf("vinyl with id %d not found", id))
			}
			return models.NewInternalError(err)
		}
		r.logger.LogRead(ctx, map[string]interface{}{"vinyl_id": id})
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &vinyl, nil
}

func (r *vinylRepository) Update(ctx context.Context, vinyl *models.Vinyl) error {
	defer observability.TrackQuery("update", "vinyls")()
	if err := r.db.WithContext(ctx).Save(vinyl).Error; err != nil {
		r.logger.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.logger.LogUpdate(ctx, map[string]interface{}{"vinyl_id": vinyl.ID})
	cache.InvalidateVinyl(ctx, vinyl.ID)
	return nil
}

func (r *vinylRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "vinyls")()
	if err := r.db.WithContext(ctx).Delete(&models.Vinyl{}, id).Error; err != nil {
		r.logger.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"vinyl_id": id})
	cache.InvalidateVinyl(ctx, id)
	return nil
}

func (r *vinylRepository) ListAll(ctx context.Context) ([]models.Vinyl, error) {
	var vinyls []models.Vinyl
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&vinyls).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vinyls, nil
}

func (r *vinylRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Vinyl, error) {
	var vinyls []models.Vinyl
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&vinyls).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vinyls, nil
}

func (r *vinylRepository) ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.Vinyl, error) {
	vinyls := []models.Vinyl{}
	if len(userIDs) == 0 {
		return vinyls, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&vinyls).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vinyls, nil
}

func (r *vinylRepository) ListLikedBy(ctx context.Context, userID uint) ([]models.Vinyl, error) {
	var vinyls []models.Vinyl
	if err := r.db.WithContext(ctx).
		Table("vinyls").
		Joins("JOIN vinyl_likes vl ON vinyls.id = vl.vinyl_id").
		Where("vl.user_id = ?", userID).
		Order("vinyls.created_at DESC").
		Find(&vinyls).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vinyls, nil
}

func (r *vinylRepository) Search(ctx context.Context, query string) ([]models.Vinyl, error) {
	var vinyls []models.Vinyl
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(artist) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Find(&vinyls).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vinyls, nil
}
