package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"testing"

	"vinyls/internal/config"
	"vinyls/internal/database"
	"vinyls/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a Server backed by an in-memory sqlite database and
// no Redis, with routes registered on a bare fiber app.
func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		Port:      "0",
		Env:       "test",
	}

	s := NewServerWithDeps(cfg, db, nil)
	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// createUser inserts a user directly with a bcrypt-hashed password.
func createUser(t *testing.T, s *Server, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:      username + "@example.com",
		Username:   username,
		Password:   string(hash),
		Connection: models.ConnectionOffline,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

// tokenFor returns a Bearer header value for the given user.
func tokenFor(t *testing.T, s *Server, userID uint) string {
	t.Helper()

	token, err := s.generateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

// doJSON performs a request with an optional JSON body and auth header.
func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals the response body into dest.
func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest), "body: %s", string(raw))
}

// errorBody decodes the standard error envelope.
func errorBody(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	return body
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func userPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/users/%d%s", id, suffix)
}

func vinylPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/vinyls/%d%s", id, suffix)
}
