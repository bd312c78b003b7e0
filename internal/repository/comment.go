package repository

import (
	"context"

	"vinyls/internal/models"
	"vinyls/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for vinyl comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByVinyl(ctx context.Context, vinylID uint) ([]models.Comment, error)
	DeleteByVinyl(ctx context.Context, vinylID uint) error
}

type commentRepository struct {
	db     *gorm.DB
	logger *observability.RepoLogger
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{
		db:     db,
		logger: observability.NewRepoLogger("comments"),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", "comments")()
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{
		"comment_id": comment.ID,
		"vinyl_id":   comment.VinylID,
	})
	return nil
}

// ListByVinyl returns comments oldest first, the order they were posted.
func (r *commentRepository) ListByVinyl(ctx context.Context, vinylID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("vinyl_id = ?", vinylID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) DeleteByVinyl(ctx context.Context, vinylID uint) error {
	defer observability.TrackQuery("delete_by_vinyl", "comments")()
	if err := r.db.WithContext(ctx).
		Where("vinyl_id = ?", vinylID).
		Delete(&models.Comment{}).Error; err != nil {
		r.logger.LogError(ctx, err, "delete_by_vinyl")
		return models.NewInternalError(err)
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"vinyl_id": vinylID})
	return nil
}
