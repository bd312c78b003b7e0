package service

import (
	"context"

	"vinyls/internal/models"
)

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	listFn                func(context.Context) ([]models.User, error)
	listRandomExcludingFn func(context.Context, uint, int) ([]models.User, error)
	searchByUsernameFn    func(context.Context, string) ([]models.User, error)
	updateConnectionFn    func(context.Context, uint, string) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}
func (s *userRepoStub) ListRandomExcluding(ctx context.Context, excludeID uint, limit int) ([]models.User, error) {
	return s.listRandomExcludingFn(ctx, excludeID, limit)
}
func (s *userRepoStub) SearchByUsername(ctx context.Context, query string) ([]models.User, error) {
	return s.searchByUsernameFn(ctx, query)
}
func (s *userRepoStub) UpdateConnection(ctx context.Context, id uint, status string) error {
	return s.updateConnectionFn(ctx, id, status)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:             func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:          func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:       func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:              func(context.Context, *models.User) error { return nil },
		updateFn:              func(context.Context, *models.User) error { return nil },
		listFn:                func(context.Context) ([]models.User, error) { return nil, nil },
		listRandomExcludingFn: func(context.Context, uint, int) ([]models.User, error) { return nil, nil },
		searchByUsernameFn:    func(context.Context, string) ([]models.User, error) { return nil, nil },
		updateConnectionFn:    func(context.Context, uint, string) error { return nil },
	}
}

type followRepoStub struct {
	createFn       func(context.Context, *models.Follow) error
	deleteFn       func(context.Context, uint, uint) error
	existsFn       func(context.Context, uint, uint) (bool, error)
	followeeIDsFn  func(context.Context, uint) ([]uint, error)
	followerIDsFn  func(context.Context, uint) ([]uint, error)
	getFolloweesFn func(context.Context, uint) ([]models.User, error)
	getFollowersFn func(context.Context, uint) ([]models.User, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followeeID uint) error {
	return s.deleteFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.existsFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FolloweeIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followeeIDsFn(ctx, userID)
}
func (s *followRepoStub) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followerIDsFn(ctx, userID)
}
func (s *followRepoStub) GetFollowees(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFolloweesFn(ctx, userID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:       func(context.Context, *models.Follow) error { return nil },
		deleteFn:       func(context.Context, uint, uint) error { return nil },
		existsFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
		followeeIDsFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
		followerIDsFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
		getFolloweesFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getFollowersFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

type vinylRepoStub struct {
	createFn        func(context.Context, *models.Vinyl) error
	getByIDFn       func(context.Context, uint) (*models.Vinyl, error)
	updateFn        func(context.Context, *models.Vinyl) error
	deleteFn        func(context.Context, uint) error
	listAllFn       func(context.Context) ([]models.Vinyl, error)
	listByUserIDFn  func(context.Context, uint) ([]models.Vinyl, error)
	listByUserIDsFn func(context.Context, []uint) ([]models.Vinyl, error)
	listLikedByFn   func(context.Context, uint) ([]models.Vinyl, error)
	searchFn        func(context.Context, string) ([]models.Vinyl, error)
}

func (s *vinylRepoStub) Create(ctx context.Context, vinyl *models.Vinyl) error {
	return s.createFn(ctx, vinyl)
}
func (s *vinylRepoStub) GetByID(ctx context.Context, id uint) (*models.Vinyl, error) {
	return s.getByIDFn(ctx, id)
}
func (s *vinylRepoStub) Update(ctx context.Context, vinyl *models.Vinyl) error {
	return s.updateFn(ctx, vinyl)
}
func (s *vinylRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *vinylRepoStub) ListAll(ctx context.Context) ([]models.Vinyl, error) {
	return s.listAllFn(ctx)
}
func (s *vinylRepoStub) ListByUserID(ctx context.Context, userID uint) ([]models.Vinyl, error) {
	return s.listByUserIDFn(ctx, userID)
}
func (s *vinylRepoStub) ListByUserIDs(ctx context.Context, userIDs []uint) ([]models.Vinyl, error) {
	return s.listByUserIDsFn(ctx, userIDs)
}
func (s *vinylRepoStub) ListLikedBy(ctx context.Context, userID uint) ([]models.Vinyl, error) {
	return s.listLikedByFn(ctx, userID)
}
func (s *vinylRepoStub) Search(ctx context.Context, query string) ([]models.Vinyl, error) {
	return s.searchFn(ctx, query)
}

func noopVinylRepo() *vinylRepoStub {
	return &vinylRepoStub{
		createFn:        func(context.Context, *models.Vinyl) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.Vinyl, error) { return &models.Vinyl{}, nil },
		updateFn:        func(context.Context, *models.Vinyl) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		listAllFn:       func(context.Context) ([]models.Vinyl, error) { return nil, nil },
		listByUserIDFn:  func(context.Context, uint) ([]models.Vinyl, error) { return nil, nil },
		listByUserIDsFn: func(context.Context, []uint) ([]models.Vinyl, error) { return nil, nil },
		listLikedByFn:   func(context.Context, uint) ([]models.Vinyl, error) { return nil, nil },
		searchFn:        func(context.Context, string) ([]models.Vinyl, error) { return nil, nil },
	}
}

type likeRepoStub struct {
	createFn          func(context.Context, *models.VinylLike) error
	deleteFn          func(context.Context, uint, uint) error
	existsFn          func(context.Context, uint, uint) (bool, error)
	userIDsForVinylFn func(context.Context, uint) ([]uint, error)
	deleteByVinylFn   func(context.Context, uint) error
}

func (s *likeRepoStub) Create(ctx context.Context, like *models.VinylLike) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) Delete(ctx context.Context, vinylID, userID uint) error {
	return s.deleteFn(ctx, vinylID, userID)
}
func (s *likeRepoStub) Exists(ctx context.Context, vinylID, userID uint) (bool, error) {
	return s.existsFn(ctx, vinylID, userID)
}
func (s *likeRepoStub) UserIDsForVinyl(ctx context.Context, vinylID uint) ([]uint, error) {
	return s.userIDsForVinylFn(ctx, vinylID)
}
func (s *likeRepoStub) DeleteByVinyl(ctx context.Context, vinylID uint) error {
	return s.deleteByVinylFn(ctx, vinylID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		createFn:          func(context.Context, *models.VinylLike) error { return nil },
		deleteFn:          func(context.Context, uint, uint) error { return nil },
		existsFn:          func(context.Context, uint, uint) (bool, error) { return false, nil },
		userIDsForVinylFn: func(context.Context, uint) ([]uint, error) { return nil, nil },
		deleteByVinylFn:   func(context.Context, uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	listByVinylFn   func(context.Context, uint) ([]models.Comment, error)
	deleteByVinylFn func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByVinyl(ctx context.Context, vinylID uint) ([]models.Comment, error) {
	return s.listByVinylFn(ctx, vinylID)
}
func (s *commentRepoStub) DeleteByVinyl(ctx context.Context, vinylID uint) error {
	return s.deleteByVinylFn(ctx, vinylID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(context.Context, *models.Comment) error { return nil },
		listByVinylFn:   func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		deleteByVinylFn: func(context.Context, uint) error { return nil },
	}
}

func strptr(s string) *string { return &s }
