package server

import (
	"vinyls/internal/models"
	"vinyls/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, err := s.userService.Retrieve(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, profile)
}

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	profiles, err := s.userService.RetrieveAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, profiles)
}

// GetGalleryUsers handles GET /api/users/user/:id
func (s *Server) GetGalleryUsers(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profiles, err := s.userService.RetrieveGallery(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, profiles)
}

// SearchUsers handles GET /api/users/search/:query?
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	profiles, err := s.userService.Search(c.UserContext(), optionalParam(c, "query"))
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, profiles)
}

// UpdateUser handles PATCH /api/users/:id
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	var req struct {
		Username      *string `json:"username"`
		Password      *string `json:"password"`
		NewPassword   *string `json:"newPassword"`
		ImgProfileURL *string `json:"imgProfileUrl"`
		Bio           *string `json:"bio"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}

	if err := s.userService.Update(c.UserContext(), id, service.UserUpdateParams{
		Username:      req.Username,
		Password:      req.Password,
		NewPassword:   req.NewPassword,
		ImgProfileURL: req.ImgProfileURL,
		Bio:           req.Bio,
	}); err != nil {
		return fail(c, err)
	}

	return respondMessage(c, "user updated")
}

// SetConnected handles PATCH /api/users/:id/connected
func (s *Server) SetConnected(c *fiber.Ctx) error {
	return s.setConnection(c, "user online")
}

// SetDisconnected handles PATCH /api/users/:id/disconnected
func (s *Server) SetDisconnected(c *fiber.Ctx) error {
	return s.setConnection(c, "user offline")
}

func (s *Server) setConnection(c *fiber.Ctx, message string) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	var req struct {
		Connected *string `json:"connected"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}

	if err := s.userService.SetConnection(c.UserContext(), id, req.Connected); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, message)
}
