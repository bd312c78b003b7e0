package server

import (
	"fmt"
	"io"

	"vinyls/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// readUpload extracts the uploaded file content and content type from the
// multipart form. On failure it writes a 400 response and returns
// errResponseWritten.
func (s *Server) readUpload(c *fiber.Ctx) ([]byte, string, error) {
	if s.media == nil {
		_ = models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewInternalError(fmt.Errorf("media store not configured")))
		return nil, "", errResponseWritten
	}

	file, err := c.FormFile("image")
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("no file uploaded"))
		return nil, "", errResponseWritten
	}

	src, err := file.Open()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("unable to read uploaded file"))
		return nil, "", errResponseWritten
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("unable to read uploaded file"))
		return nil, "", errResponseWritten
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return content, contentType, nil
}

// UploadProfilePicture handles POST /api/users/:id/profilePicture
func (s *Server) UploadProfilePicture(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	content, contentType, err := s.readUpload(c)
	if err != nil {
		return nil
	}

	key := fmt.Sprintf("profiles/%d/%s", id, uuid.NewString())
	url, err := s.media.Upload(c.UserContext(), key, content, contentType)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.userService.SetProfilePicture(c.UserContext(), id, url); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "photo uploaded")
}

// UploadVinylPicture handles POST /api/vinyls/:id/image
func (s *Server) UploadVinylPicture(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	content, contentType, err := s.readUpload(c)
	if err != nil {
		return nil
	}

	key := fmt.Sprintf("vinyls/%d/%s", id, uuid.NewString())
	url, err := s.media.Upload(c.UserContext(), key, content, contentType)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.vinylService.SetPicture(c.UserContext(), id, url); err != nil {
		return fail(c, err)
	}
	return respondData(c, "photo uploaded")
}
