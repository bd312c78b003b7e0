package repository

import (
	"context"

	"vinyls/internal/cache"
	"vinyls/internal/models"
	"vinyls/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for vinyl likes.
type LikeRepository interface {
	Create(ctx context.Context, like *models.VinylLike) error
	Delete(ctx context.Context, vinylID, userID uint) error
	Exists(ctx context.Context, vinylID, userID uint) (bool, error)
	UserIDsForVinyl(ctx context.Context, vinylID uint) ([]uint, error)
	DeleteByVinyl(ctx context.Context, vinylID uint) error
}

type likeRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewLikeRepository creates a new like repository.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{
		db:     db,
		logger: observability.NewRepoLogger("vinyl_likes"),
	}
}

func (r *likeRepository) Create(ctx context.Context, like *models.VinylLike) error {
	defer observability.TrackQuery("create", "vinyl_likes")()
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewAlreadyExistsError("already likes this vinyl")
		}
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{
		"vinyl_id": like.VinylID,
		"user_id":  like.UserID,
	})
	cache.InvalidateVinylLikes(ctx, like.VinylID)
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, vinylID, userID uint) error {
	defer observability.TrackQuery("delete", "vinyl_likes")()
	if err := r.db.WithContext(ctx).
		Where("vinyl_id = ? AND user_id = ?", vinylID, userID).
		Delete(&models.VinylLike{}).Error; err != nil {
		r.logger.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.logger.LogDelete(ctx, map[string]interface{}{
		"vinyl_id": vinylID,
		"user_id":  userID,
	})
	cache.InvalidateVinylLikes(ctx, vinylID)
	return nil
}

func (r *likeRepository) Exists(ctx context.Context, vinylID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VinylLike{}).
		Where("vinyl_id = ? AND user_id = ?", vinylID, userID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) UserIDsForVinyl(ctx context.Context, vinylID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.VinylLike{}).
		Where("vinyl_id = ?", vinylID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *likeRepository) DeleteByVinyl(ctx context.Context, vinylID uint) error {
	defer observability.TrackQuery("delete_by_vinyl", "vinyl_likes")()
	if err := r.db.WithContext(ctx).
		Where("vinyl_id = ?", vinylID).
		Delete(&models.VinylLike{}).Error; err != nil {
		r.logger.LogError(ctx, err, "delete_by_vinyl")
		return models.NewInternalError(err)
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"vinyl_id": vinylID})
	cache.InvalidateVinylLikes(ctx, vinylID)
	return nil
}
