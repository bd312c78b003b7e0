package seed

import (
	"testing"

	"vinyls/internal/database"
	"vinyls/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeederRun(t *testing.T) {
	db := setupDB(t)
	s := NewSeeder(db, Options{
		Users:          5,
		VinylsPerUser:  2,
		FollowsPerUser: 2,
		SkipBcrypt:     true,
	})

	users, err := s.Run()
	require.NoError(t, err)
	assert.Len(t, users, 5)

	var userCount, vinylCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Vinyl{}).Count(&vinylCount).Error)
	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 10, vinylCount)

	// No self-follows and no duplicate edges.
	var follows []models.Follow
	require.NoError(t, db.Find(&follows).Error)
	seen := make(map[[2]uint]bool)
	for _, f := range follows {
		assert.NotEqual(t, f.FollowerID, f.FolloweeID)
		key := [2]uint{f.FollowerID, f.FolloweeID}
		assert.False(t, seen[key], "duplicate follow edge")
		seen[key] = true
	}
}

func TestSeederClearAll(t *testing.T) {
	db := setupDB(t)
	s := NewSeeder(db, Options{Users: 3, VinylsPerUser: 1, FollowsPerUser: 1, SkipBcrypt: true})

	_, err := s.Run()
	require.NoError(t, err)
	require.NoError(t, s.ClearAll())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
