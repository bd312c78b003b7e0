package server

import (
	"errors"

	"vinyls/internal/models"
	"vinyls/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid id"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// requireSelf rejects requests whose path id differs from the token subject.
// On mismatch it writes a 403 JSON response and returns errResponseWritten.
func (s *Server) requireSelf(c *fiber.Ctx, id uint) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID != id {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewNotAllowedError("token sub does not match user id"))
		return errResponseWritten
	}
	return nil
}

// fail maps a domain error to its HTTP status, records it on the request
// span, and writes the error response.
func fail(c *fiber.Ctx, err error) error {
	observability.RecordErrorInContext(c.UserContext(), err)
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// respondData writes the payload under the "data" envelope.
func respondData(c *fiber.Ctx, v any) error {
	return c.JSON(fiber.Map{"data": v})
}

// respondMessage writes a plain confirmation message.
func respondMessage(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

// optionalParam returns the named route parameter, or nil when it is absent.
func optionalParam(c *fiber.Ctx, param string) *string {
	value := c.Params(param)
	if value == "" {
		return nil
	}
	return &value
}
