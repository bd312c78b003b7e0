package service

import (
	"context"

	"vinyls/internal/models"
	"vinyls/internal/observability"
	"vinyls/internal/repository"
	"vinyls/internal/validation"
)

// VinylService provides the vinyl catalogue business logic: records, likes
// and comments.
type VinylService struct {
	vinylRepo   repository.VinylRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
}

// NewVinylService returns a new VinylService.
func NewVinylService(
	vinylRepo repository.VinylRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *VinylService {
	return &VinylService{
		vinylRepo:   vinylRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
	}
}

// VinylParams carries the writable fields of a vinyl. Title, Artist and Year
// are required; ImgVinylURL and Info may be absent.
type VinylParams struct {
	Title       *string
	Artist      *string
	Year        *string
	ImgVinylURL *string
	Info        *string
}

func (p VinylParams) validate() error {
	return validation.Fields(
		validation.Field{Name: "title", Value: p.Title, Kind: validation.String},
		validation.Field{Name: "artist", Value: p.Artist, Kind: validation.String},
		validation.Field{Name: "year", Value: p.Year, Kind: validation.String},
		validation.Field{Name: "imgVinylUrl", Value: p.ImgVinylURL, Kind: validation.String, Optional: true},
	)
}

// view projects a vinyl together with its like set and comments.
func (s *VinylService) view(ctx context.Context, vinyl *models.Vinyl) (*models.VinylView, error) {
	likes, err := s.likeRepo.UserIDsForVinyl(ctx, vinyl.ID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByVinyl(ctx, vinyl.ID)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].View())
	}

	return vinyl.View(likes, views), nil
}

func (s *VinylService) views(ctx context.Context, vinyls []models.Vinyl) ([]models.VinylView, error) {
	out := make([]models.VinylView, 0, len(vinyls))
	for i := range vinyls {
		v, err := s.view(ctx, &vinyls[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// Add creates a vinyl owned by the user and returns its id.
func (s *VinylService) Add(ctx context.Context, userID uint, params VinylParams) (uint, error) {
	if err := params.validate(); err != nil {
		return 0, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, err
	}

	vinyl := &models.Vinyl{
		UserID: userID,
		Title:  *params.Title,
		Artist: *params.Artist,
		Year:   *params.Year,
	}
	if params.ImgVinylURL != nil {
		vinyl.ImgVinylURL = *params.ImgVinylURL
	}
	if params.Info != nil {
		vinyl.Info = *params.Info
	}

	if err := s.vinylRepo.Create(ctx, vinyl); err != nil {
		return 0, err
	}

	observability.VinylsCreated.Inc()
	return vinyl.ID, nil
}

// Edit replaces the writable fields of the vinyl.
func (s *VinylService) Edit(ctx context.Context, id uint, params VinylParams) error {
	if err := params.validate(); err != nil {
		return err
	}

	vinyl, err := s.vinylRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	vinyl.Title = *params.Title
	vinyl.Artist = *params.Artist
	vinyl.Year = *params.Year
	if params.ImgVinylURL != nil {
		vinyl.ImgVinylURL = *params.ImgVinylURL
	} else {
		vinyl.ImgVinylURL = ""
	}
	if params.Info != nil {
		vinyl.Info = *params.Info
	} else {
		vinyl.Info = ""
	}

	return s.vinylRepo.Update(ctx, vinyl)
}

// Remove deletes the vinyl together with its likes and comments.
func (s *VinylService) Remove(ctx context.Context, id uint) error {
	if _, err := s.vinylRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByVinyl(ctx, id); err != nil {
		return err
	}
	if err := s.likeRepo.DeleteByVinyl(ctx, id); err != nil {
		return err
	}
	return s.vinylRepo.Delete(ctx, id)
}

// RetrieveAll returns every vinyl, newest first.
func (s *VinylService) RetrieveAll(ctx context.Context) ([]models.VinylView, error) {
	vinyls, err := s.vinylRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, vinyls)
}

// RetrieveByID returns the vinyl with its like set and comments.
func (s *VinylService) RetrieveByID(ctx context.Context, id uint) (*models.VinylView, error) {
	vinyl, err := s.vinylRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, vinyl)
}

// RetrieveByUserID returns the vinyls owned by the user.
func (s *VinylService) RetrieveByUserID(ctx context.Context, userID uint) ([]models.VinylView, error) {
	vinyls, err := s.vinylRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, vinyls)
}

// RetrieveFollowees returns the vinyls posted by the users the user follows.
func (s *VinylService) RetrieveFollowees(ctx context.Context, userID uint) ([]models.VinylView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	followees, err := s.followRepo.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	vinyls, err := s.vinylRepo.ListByUserIDs(ctx, followees)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, vinyls)
}

// RetrieveFavourites returns the vinyls the user has liked.
func (s *VinylService) RetrieveFavourites(ctx context.Context, userID uint) ([]models.VinylView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	vinyls, err := s.vinylRepo.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, vinyls)
}

// Search returns the vinyls whose title or artist contains the query,
// case-insensitively. A nil query matches everything.
func (s *VinylService) Search(ctx context.Context, query *string) ([]models.VinylView, error) {
	if err := validation.Fields(
		validation.Field{Name: "query", Value: query, Kind: validation.String, Optional: true},
	); err != nil {
		return nil, err
	}

	q := ""
	if query != nil {
		q = *query
	}
	vinyls, err := s.vinylRepo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, vinyls)
}

// SetPicture stores the uploaded picture URL on the vinyl.
func (s *VinylService) SetPicture(ctx context.Context, id uint, url string) error {
	vinyl, err := s.vinylRepo.GetByID(ctx, id)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
			return models.NewNotFoundError("vinyl does not exist")
		}
		return err
	}

	vinyl.ImgVinylURL = url
	return s.vinylRepo.Update(ctx, vinyl)
}

// AddLike records the user's like on the vinyl.
func (s *VinylService) AddLike(ctx context.Context, vinylID, userID uint) error {
	vinyl, err := s.vinylRepo.GetByID(ctx, vinylID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	liked, err := s.likeRepo.Exists(ctx, vinyl.ID, userID)
	if err != nil {
		return err
	}
	if liked {
		return models.NewAlreadyExistsError("already likes this vinyl")
	}

	if err := s.likeRepo.Create(ctx, &models.VinylLike{
		VinylID: vinyl.ID,
		UserID:  userID,
	}); err != nil {
		return err
	}

	observability.LikeEvents.WithLabelValues("add").Inc()
	return nil
}

// RemoveLike removes the user's like from the vinyl. Removing an absent like
// is a no-op.
func (s *VinylService) RemoveLike(ctx context.Context, vinylID, userID uint) error {
	vinyl, err := s.vinylRepo.GetByID(ctx, vinylID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.likeRepo.Delete(ctx, vinyl.ID, userID); err != nil {
		return err
	}

	observability.LikeEvents.WithLabelValues("remove").Inc()
	return nil
}

// Likes returns the ids of the users who like the vinyl.
func (s *VinylService) Likes(ctx context.Context, vinylID uint) ([]uint, error) {
	if _, err := s.vinylRepo.GetByID(ctx, vinylID); err != nil {
		return nil, err
	}

	likes, err := s.likeRepo.UserIDsForVinyl(ctx, vinylID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []uint{}
	}
	return likes, nil
}

// AddComment posts a comment on the vinyl, snapshotting the author's
// username and profile picture as they are at posting time.
func (s *VinylService) AddComment(ctx context.Context, vinylID, userID uint, text *string) error {
	if err := validation.Fields(
		validation.Field{Name: "text", Value: text, Kind: validation.String},
	); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	vinyl, err := s.vinylRepo.GetByID(ctx, vinylID)
	if err != nil {
		return err
	}

	comment := &models.Comment{
		VinylID:       vinyl.ID,
		UserID:        user.ID,
		Text:          *text,
		Username:      user.Username,
		ImgProfileURL: user.ImgProfileURL,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return err
	}

	observability.CommentsCreated.Inc()
	return nil
}

// Comments returns the comments of the vinyl, oldest first.
func (s *VinylService) Comments(ctx context.Context, vinylID uint) ([]models.CommentView, error) {
	if _, err := s.vinylRepo.GetByID(ctx, vinylID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByVinyl(ctx, vinylID)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, comments[i].View())
	}
	return views, nil
}
