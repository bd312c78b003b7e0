// Package service implements the domain logic of the application.
package service

import (
	"context"
	"fmt"

	"vinyls/internal/models"
	"vinyls/internal/observability"
	"vinyls/internal/repository"
	"vinyls/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// gallerySize is the number of random users shown in the gallery.
const gallerySize = 8

// UserService provides account and profile business logic.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// UserUpdateParams carries the updatable fields of a profile. Username and
// Password are required, Password being the current password re-entered to
// authorize the change.
type UserUpdateParams struct {
	Username      *string
	Password      *string
	NewPassword   *string
	ImgProfileURL *string
	Bio           *string
}

// buildProfile projects a user together with its follow edges.
func buildProfile(ctx context.Context, followRepo repository.FollowRepository, user *models.User) (*models.UserProfile, error) {
	follows, err := followRepo.FolloweeIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followers, err := followRepo.FollowerIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user.Profile(follows, followers), nil
}

// Register creates a new account with a unique username.
func (s *UserService) Register(ctx context.Context, email, username, password *string) error {
	if err := validation.Fields(
		validation.Field{Name: "email", Value: email, Kind: validation.String},
		validation.Field{Name: "username", Value: username, Kind: validation.String},
		validation.Field{Name: "password", Value: password, Kind: validation.String},
	); err != nil {
		return err
	}

	existing, err := s.userRepo.GetByUsername(ctx, *username)
	if err != nil {
		return err
	}
	if existing != nil {
		return models.NewAlreadyExistsError(fmt.Sprintf("username %s already registered", *username))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user := &models.User{
		Email:      *email,
		Username:   *username,
		Password:   string(hash),
		Connection: models.ConnectionOffline,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	observability.UsersRegistered.Inc()
	return nil
}

// Authenticate verifies the credentials and returns the account. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password *string) (*models.User, error) {
	if err := validation.Fields(
		validation.Field{Name: "username", Value: username, Kind: validation.String},
		validation.Field{Name: "password", Value: password, Kind: validation.String},
	); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, *username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewAuthError("invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*password)) != nil {
		return nil, models.NewAuthError("invalid username or password")
	}
	return user, nil
}

// Retrieve returns the public profile of the user.
func (s *UserService) Retrieve(ctx context.Context, id uint) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildProfile(ctx, s.followRepo, user)
}

// RetrieveAll returns the public profiles of every user.
func (s *UserService) RetrieveAll(ctx context.Context) ([]models.UserProfile, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, users)
}

// RetrieveGallery returns a random sample of other users' profiles.
func (s *UserService) RetrieveGallery(ctx context.Context, id uint) ([]models.UserProfile, error) {
	users, err := s.userRepo.ListRandomExcluding(ctx, id, gallerySize)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, users)
}

// Search returns the profiles of users whose username contains the query,
// case-insensitively. A nil query matches everyone.
func (s *UserService) Search(ctx context.Context, query *string) ([]models.UserProfile, error) {
	if err := validation.Fields(
		validation.Field{Name: "query", Value: query, Kind: validation.String, Optional: true},
	); err != nil {
		return nil, err
	}

	q := ""
	if query != nil {
		q = *query
	}
	users, err := s.userRepo.SearchByUsername(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, users)
}

// Update changes the profile after re-verifying the current password.
func (s *UserService) Update(ctx context.Context, id uint, params UserUpdateParams) error {
	if err := validation.Fields(
		validation.Field{Name: "username", Value: params.Username, Kind: validation.String},
		validation.Field{Name: "password", Value: params.Password, Kind: validation.String},
		validation.Field{Name: "newPassword", Value: params.NewPassword, Kind: validation.String, Optional: true},
		validation.Field{Name: "imgProfileUrl", Value: params.ImgProfileURL, Kind: validation.String, Optional: true},
	); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*params.Password)) != nil {
		return models.NewAuthError("invalid password")
	}

	if *params.Username != user.Username {
		other, err := s.userRepo.GetByUsername(ctx, *params.Username)
		if err != nil {
			return err
		}
		if other != nil {
			return models.NewAlreadyExistsError(fmt.Sprintf("username %s already exists", *params.Username))
		}
		user.Username = *params.Username
	}

	if params.NewPassword != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return models.NewInternalError(err)
		}
		user.Password = string(hash)
	}
	if params.ImgProfileURL != nil {
		user.ImgProfileURL = *params.ImgProfileURL
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}

	return s.userRepo.Update(ctx, user)
}

// SetConnection records the user's presence status.
func (s *UserService) SetConnection(ctx context.Context, id uint, status *string) error {
	if err := validation.Fields(
		validation.Field{Name: "connected", Value: status, Kind: validation.String},
	); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
			return models.NewNotFoundError("user does not exist")
		}
		return err
	}

	return s.userRepo.UpdateConnection(ctx, user.ID, *status)
}

// SetProfilePicture stores the uploaded picture URL on the profile.
func (s *UserService) SetProfilePicture(ctx context.Context, id uint, url string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
			return models.NewNotFoundError("user does not exist")
		}
		return err
	}

	user.ImgProfileURL = url
	return s.userRepo.Update(ctx, user)
}

func (s *UserService) profiles(ctx context.Context, users []models.User) ([]models.UserProfile, error) {
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
