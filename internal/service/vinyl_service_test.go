package service

import (
	"context"
	"errors"
	"testing"

	"vinyls/internal/models"
)

func newVinylService(
	vinylRepo *vinylRepoStub,
	likeRepo *likeRepoStub,
	commentRepo *commentRepoStub,
	userRepo *userRepoStub,
	followRepo *followRepoStub,
) *VinylService {
	return NewVinylService(vinylRepo, likeRepo, commentRepo, userRepo, followRepo)
}

func TestVinylServiceAddMissingTitle(t *testing.T) {
	svc := newVinylService(noopVinylRepo(), noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	_, err := svc.Add(context.Background(), 1, VinylParams{
		Artist: strptr("Nina Simone"),
		Year:   strptr("1965"),
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeTypeError {
		t.Fatalf("expected type app error, got %#v", err)
	}
	if appErr.Message != "undefined is not a string" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestVinylServiceAddBlankYear(t *testing.T) {
	svc := newVinylService(noopVinylRepo(), noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	_, err := svc.Add(context.Background(), 1, VinylParams{
		Title:  strptr("Pastel Blues"),
		Artist: strptr("Nina Simone"),
		Year:   strptr("  "),
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValueError {
		t.Fatalf("expected value app error, got %#v", err)
	}
	if appErr.Message != "year is empty or blank" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestVinylServiceAddUnknownOwner(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewNotFoundError("user with id 5 not found")
	}

	svc := newVinylService(noopVinylRepo(), noopLikeRepo(), noopCommentRepo(), userRepo, noopFollowRepo())
	_, err := svc.Add(context.Background(), 5, VinylParams{
		Title:  strptr("Pastel Blues"),
		Artist: strptr("Nina Simone"),
		Year:   strptr("1965"),
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestVinylServiceAddSuccess(t *testing.T) {
	var created *models.Vinyl
	vinylRepo := noopVinylRepo()
	vinylRepo.createFn = func(_ context.Context, v *models.Vinyl) error {
		v.ID = 11
		created = v
		return nil
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	id, err := svc.Add(context.Background(), 3, VinylParams{
		Title:  strptr("Pastel Blues"),
		Artist: strptr("Nina Simone"),
		Year:   strptr("1965"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 11 {
		t.Fatalf("expected id 11, got %d", id)
	}
	if created.UserID != 3 {
		t.Fatalf("expected owner 3, got %d", created.UserID)
	}
	if created.ImgVinylURL != "" || created.Info != "" {
		t.Fatalf("expected absent optional fields to default to empty, got %#v", created)
	}
}

func TestVinylServiceEditUnknownVinyl(t *testing.T) {
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return nil, models.NewNotFoundError("vinyl with id 7 not found")
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	err := svc.Edit(context.Background(), 7, VinylParams{
		Title:  strptr("Pastel Blues"),
		Artist: strptr("Nina Simone"),
		Year:   strptr("1965"),
	})
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
	if appErr.Message != "vinyl with id 7 not found" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestVinylServiceEditClearsAbsentOptionals(t *testing.T) {
	var saved *models.Vinyl
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return &models.Vinyl{ID: 7, Title: "Old", Artist: "Old", Year: "1960", ImgVinylURL: "old.jpg", Info: "old info"}, nil
	}
	vinylRepo.updateFn = func(_ context.Context, v *models.Vinyl) error {
		saved = v
		return nil
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	err := svc.Edit(context.Background(), 7, VinylParams{
		Title:  strptr("Pastel Blues"),
		Artist: strptr("Nina Simone"),
		Year:   strptr("1965"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Title != "Pastel Blues" || saved.Year != "1965" {
		t.Fatalf("unexpected update: %#v", saved)
	}
	if saved.ImgVinylURL != "" || saved.Info != "" {
		t.Fatalf("expected absent optionals to be cleared, got %#v", saved)
	}
}

func TestVinylServiceRemoveCascades(t *testing.T) {
	var commentsDeleted, likesDeleted, vinylDeleted bool
	commentRepo := noopCommentRepo()
	commentRepo.deleteByVinylFn = func(context.Context, uint) error {
		commentsDeleted = true
		return nil
	}
	likeRepo := noopLikeRepo()
	likeRepo.deleteByVinylFn = func(context.Context, uint) error {
		likesDeleted = true
		return nil
	}
	vinylRepo := noopVinylRepo()
	vinylRepo.deleteFn = func(context.Context, uint) error {
		vinylDeleted = true
		return nil
	}

	svc := newVinylService(vinylRepo, likeRepo, commentRepo, noopUserRepo(), noopFollowRepo())
	if err := svc.Remove(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !commentsDeleted || !likesDeleted || !vinylDeleted {
		t.Fatalf("expected full cascade, got comments=%v likes=%v vinyl=%v", commentsDeleted, likesDeleted, vinylDeleted)
	}
}

func TestVinylServiceAddLikeDuplicate(t *testing.T) {
	likeRepo := noopLikeRepo()
	likeRepo.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := newVinylService(noopVinylRepo(), likeRepo, noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	err := svc.AddLike(context.Background(), 7, 1)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeAlreadyExists {
		t.Fatalf("expected conflict app error, got %#v", err)
	}
	if appErr.Message != "already likes this vinyl" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestVinylServiceAddLikeUnknownUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return nil, models.NewNotFoundError("user with id 8 not found")
	}

	svc := newVinylService(noopVinylRepo(), noopLikeRepo(), noopCommentRepo(), userRepo, noopFollowRepo())
	err := svc.AddLike(context.Background(), 7, 8)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestVinylServiceAddLikeSuccess(t *testing.T) {
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return &models.Vinyl{ID: 7}, nil
	}
	var created *models.VinylLike
	likeRepo := noopLikeRepo()
	likeRepo.createFn = func(_ context.Context, like *models.VinylLike) error {
		created = like
		return nil
	}

	svc := newVinylService(vinylRepo, likeRepo, noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	if err := svc.AddLike(context.Background(), 7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.VinylID != 7 || created.UserID != 2 {
		t.Fatalf("unexpected like: %#v", created)
	}
}

func TestVinylServiceRemoveLikeIdempotent(t *testing.T) {
	var gotVinyl, gotUser uint
	likeRepo := noopLikeRepo()
	likeRepo.deleteFn = func(_ context.Context, vinylID, userID uint) error {
		gotVinyl, gotUser = vinylID, userID
		return nil
	}
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return &models.Vinyl{ID: 7}, nil
	}

	svc := newVinylService(vinylRepo, likeRepo, noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	// No prior like; removal still succeeds.
	if err := svc.RemoveLike(context.Background(), 7, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotVinyl != 7 || gotUser != 2 {
		t.Fatalf("unexpected delete args: vinyl=%d user=%d", gotVinyl, gotUser)
	}
}

func TestVinylServiceLikesEmpty(t *testing.T) {
	svc := newVinylService(noopVinylRepo(), noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	likes, err := svc.Likes(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if likes == nil || len(likes) != 0 {
		t.Fatalf("expected empty slice, got %#v", likes)
	}
}

func TestVinylServiceAddCommentSnapshotsAuthor(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(context.Context, uint) (*models.User, error) {
		return &models.User{ID: 2, Username: "alice", ImgProfileURL: "alice.jpg"}, nil
	}
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return &models.Vinyl{ID: 7}, nil
	}
	var created *models.Comment
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		created = c
		return nil
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), commentRepo, userRepo, noopFollowRepo())
	if err := svc.AddComment(context.Background(), 7, 2, strptr("great pressing")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected comment to be created")
	}
	if created.Username != "alice" || created.ImgProfileURL != "alice.jpg" {
		t.Fatalf("expected author snapshot, got %#v", created)
	}
	if created.VinylID != 7 || created.UserID != 2 || created.Text != "great pressing" {
		t.Fatalf("unexpected comment: %#v", created)
	}
}

func TestVinylServiceAddCommentMissingText(t *testing.T) {
	svc := newVinylService(noopVinylRepo(), noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	err := svc.AddComment(context.Background(), 7, 2, nil)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeTypeError {
		t.Fatalf("expected type app error, got %#v", err)
	}
}

func TestVinylServiceAddCommentUnknownVinyl(t *testing.T) {
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return nil, models.NewNotFoundError("vinyl with id 7 not found")
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	err := svc.AddComment(context.Background(), 7, 2, strptr("hello"))
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
	if appErr.Message != "vinyl with id 7 not found" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}

func TestVinylServiceRetrieveByIDProjection(t *testing.T) {
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return &models.Vinyl{ID: 7, UserID: 3, Title: "Pastel Blues", Artist: "Nina Simone", Year: "1965"}, nil
	}
	likeRepo := noopLikeRepo()
	likeRepo.userIDsForVinylFn = func(context.Context, uint) ([]uint, error) { return []uint{1, 2}, nil }
	commentRepo := noopCommentRepo()
	commentRepo.listByVinylFn = func(context.Context, uint) ([]models.Comment, error) {
		return []models.Comment{{ID: 4, UserID: 1, Text: "classic", Username: "bob"}}, nil
	}

	svc := newVinylService(vinylRepo, likeRepo, commentRepo, noopUserRepo(), noopFollowRepo())
	view, err := svc.RetrieveByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.IDVinyl != 7 || view.UserID != 3 {
		t.Fatalf("unexpected view: %#v", view)
	}
	if len(view.Likes) != 2 || view.Likes[1] != 2 {
		t.Fatalf("unexpected likes: %v", view.Likes)
	}
	if len(view.Comments) != 1 || view.Comments[0].Text != "classic" {
		t.Fatalf("unexpected comments: %#v", view.Comments)
	}
}

func TestVinylServiceRetrieveFolloweesFansOut(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.followeeIDsFn = func(context.Context, uint) ([]uint, error) { return []uint{2, 3}, nil }
	var gotIDs []uint
	vinylRepo := noopVinylRepo()
	vinylRepo.listByUserIDsFn = func(_ context.Context, ids []uint) ([]models.Vinyl, error) {
		gotIDs = ids
		return []models.Vinyl{{ID: 7, UserID: 2}}, nil
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), noopCommentRepo(), noopUserRepo(), followRepo)
	views, err := svc.RetrieveFollowees(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotIDs) != 2 || gotIDs[0] != 2 || gotIDs[1] != 3 {
		t.Fatalf("unexpected followee ids: %v", gotIDs)
	}
	if len(views) != 1 || views[0].IDVinyl != 7 {
		t.Fatalf("unexpected views: %#v", views)
	}
}

func TestVinylServiceSearchNilQueryMatchesAll(t *testing.T) {
	var gotQuery string
	vinylRepo := noopVinylRepo()
	vinylRepo.searchFn = func(_ context.Context, q string) ([]models.Vinyl, error) {
		gotQuery = q
		return []models.Vinyl{{ID: 1}, {ID: 2}}, nil
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	views, err := svc.Search(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected empty query, got %q", gotQuery)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
}

func TestVinylServiceSetPictureUnknownVinyl(t *testing.T) {
	vinylRepo := noopVinylRepo()
	vinylRepo.getByIDFn = func(context.Context, uint) (*models.Vinyl, error) {
		return nil, models.NewNotFoundError("vinyl with id 7 not found")
	}

	svc := newVinylService(vinylRepo, noopLikeRepo(), noopCommentRepo(), noopUserRepo(), noopFollowRepo())
	err := svc.SetPicture(context.Background(), 7, "http://media/vinyl7.jpg")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
	if appErr.Message != "vinyl does not exist" {
		t.Fatalf("unexpected message: %q", appErr.Message)
	}
}
