// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"vinyls/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	Users          int
	VinylsPerUser  int
	FollowsPerUser int
	// SkipBcrypt stores a plaintext password for faster local seeding.
	SkipBcrypt bool
}

// DefaultOptions is the preset used by the seed command.
var DefaultOptions = Options{
	Users:          25,
	VinylsPerUser:  4,
	FollowsPerUser: 5,
}

// Seeder populates the database with fake users, vinyls, follows, likes and
// comments. Every generated account uses the password "password123".
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded domain data. Satellite tables first to keep
// foreign keys satisfied.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Comment{},
		&models.VinylLike{},
		&models.Follow{},
		&models.Vinyl{},
		&models.User{},
	} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Run generates the full data set and returns the created users.
func (s *Seeder) Run() ([]models.User, error) {
	users, err := s.seedUsers()
	if err != nil {
		return nil, err
	}
	if err := s.seedFollows(users); err != nil {
		return nil, err
	}
	vinyls, err := s.seedVinyls(users)
	if err != nil {
		return nil, err
	}
	if err := s.seedLikesAndComments(users, vinyls); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Seeder) seedUsers() ([]models.User, error) {
	password := "password123"
	if !s.opts.SkipBcrypt {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		password = string(hash)
	}

	users := make([]models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		users = append(users, models.User{
			Username:      fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:         gofakeit.Email(),
			Password:      password,
			Bio:           gofakeit.Sentence(8),
			ImgProfileURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Connection:    models.ConnectionOffline,
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	return users, nil
}

func (s *Seeder) seedFollows(users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	seen := make(map[[2]uint]bool)
	var follows []models.Follow
	for _, u := range users {
		for i := 0; i < s.opts.FollowsPerUser; i++ {
			other := users[s.rng.Intn(len(users))]
			if other.ID == u.ID {
				continue
			}
			edge := [2]uint{u.ID, other.ID}
			if seen[edge] {
				continue
			}
			seen[edge] = true
			follows = append(follows, models.Follow{
				FollowerID: u.ID,
				FolloweeID: other.ID,
			})
		}
	}
	if len(follows) == 0 {
		return nil
	}
	if err := s.db.Create(&follows).Error; err != nil {
		return fmt.Errorf("seeding follows: %w", err)
	}
	return nil
}

func (s *Seeder) seedVinyls(users []models.User) ([]models.Vinyl, error) {
	var vinyls []models.Vinyl
	for _, u := range users {
		for i := 0; i < s.opts.VinylsPerUser; i++ {
			vinyls = append(vinyls, models.Vinyl{
				UserID:      u.ID,
				Title:       gofakeit.Sentence(3),
				Artist:      gofakeit.Name(),
				Year:        fmt.Sprintf("%d", gofakeit.Number(1950, 2024)),
				ImgVinylURL: fmt.Sprintf("https://picsum.photos/seed/%s/600/600", gofakeit.UUID()),
				Info:        gofakeit.Sentence(12),
				CreatedAt:   gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now()),
			})
		}
	}
	if len(vinyls) == 0 {
		return nil, nil
	}
	if err := s.db.Create(&vinyls).Error; err != nil {
		return nil, fmt.Errorf("seeding vinyls: %w", err)
	}
	return vinyls, nil
}

func (s *Seeder) seedLikesAndComments(users []models.User, vinyls []models.Vinyl) error {
	if len(users) == 0 || len(vinyls) == 0 {
		return nil
	}

	seenLikes := make(map[[2]uint]bool)
	var likes []models.VinylLike
	var comments []models.Comment
	for _, v := range vinyls {
		for i := 0; i < s.rng.Intn(4); i++ {
			fan := users[s.rng.Intn(len(users))]
			key := [2]uint{v.ID, fan.ID}
			if seenLikes[key] {
				continue
			}
			seenLikes[key] = true
			likes = append(likes, models.VinylLike{VinylID: v.ID, UserID: fan.ID})
		}
		for i := 0; i < s.rng.Intn(3); i++ {
			author := users[s.rng.Intn(len(users))]
			comments = append(comments, models.Comment{
				VinylID:       v.ID,
				UserID:        author.ID,
				Text:          gofakeit.Sentence(10),
				Username:      author.Username,
				ImgProfileURL: author.ImgProfileURL,
			})
		}
	}

	if len(likes) > 0 {
		if err := s.db.Create(&likes).Error; err != nil {
			return fmt.Errorf("seeding likes: %w", err)
		}
	}
	if len(comments) > 0 {
		if err := s.db.Create(&comments).Error; err != nil {
			return fmt.Errorf("seeding comments: %w", err)
		}
	}
	return nil
}
