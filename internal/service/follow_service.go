package service

import (
	"context"
	"fmt"

	"vinyls/internal/models"
	"vinyls/internal/observability"
	"vinyls/internal/repository"
	"vinyls/internal/validation"
)

// FollowService maintains the follow graph between users.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// resolvePair loads the acting user by id and the other side by username.
func (s *FollowService) resolvePair(ctx context.Context, id uint, followUsername string) (*models.User, *models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	followee, err := s.userRepo.GetByUsername(ctx, followUsername)
	if err != nil {
		return nil, nil, err
	}
	if followee == nil {
		return nil, nil, models.NewNotFoundError(fmt.Sprintf("user with username %s not found", followUsername))
	}
	return user, followee, nil
}

// Add creates a follow edge from the user to the named followee.
func (s *FollowService) Add(ctx context.Context, id uint, followUsername *string) error {
	if err := validation.Fields(
		validation.Field{Name: "followUsername", Value: followUsername, Kind: validation.String},
	); err != nil {
		return err
	}

	user, followee, err := s.resolvePair(ctx, id, *followUsername)
	if err != nil {
		return err
	}

	if user.ID == followee.ID {
		return models.NewNotAllowedError("user cannot follow himself")
	}

	exists, err := s.followRepo.Exists(ctx, user.ID, followee.ID)
	if err != nil {
		return err
	}
	if exists {
		return models.NewAlreadyExistsError("already follow this user")
	}

	if err := s.followRepo.Create(ctx, &models.Follow{
		FollowerID: user.ID,
		FolloweeID: followee.ID,
	}); err != nil {
		return err
	}

	observability.FollowEvents.WithLabelValues("add").Inc()
	return nil
}

// Remove deletes the follow edge to the named followee. Removing an edge
// that does not exist is a no-op.
func (s *FollowService) Remove(ctx context.Context, id uint, followUsername *string) error {
	if err := validation.Fields(
		validation.Field{Name: "followUsername", Value: followUsername, Kind: validation.String},
	); err != nil {
		return err
	}

	user, followee, err := s.resolvePair(ctx, id, *followUsername)
	if err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, user.ID, followee.ID); err != nil {
		return err
	}

	observability.FollowEvents.WithLabelValues("remove").Inc()
	return nil
}

// Follows returns the ids of the users the user follows.
func (s *FollowService) Follows(ctx context.Context, id uint) ([]uint, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	ids, err := s.followRepo.FolloweeIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// RetrieveFollows returns the profiles of the users the user follows.
func (s *FollowService) RetrieveFollows(ctx context.Context, id uint) ([]models.UserProfile, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	followees, err := s.followRepo.GetFollowees(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, followees)
}

// RetrieveFollowers returns the profiles of the users following the user.
func (s *FollowService) RetrieveFollowers(ctx context.Context, id uint) ([]models.UserProfile, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	followers, err := s.followRepo.GetFollowers(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, followers)
}

func (s *FollowService) profiles(ctx context.Context, users []models.User) ([]models.UserProfile, error) {
	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		p, err := buildProfile(ctx, s.followRepo, &users[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}
