package server

import (
	"vinyls/internal/models"

	"github.com/gofiber/fiber/v2"
)

type followRequest struct {
	FollowUsername *string `json:"followUsername"`
}

// AddFollow handles PATCH /api/users/:id/follows
func (s *Server) AddFollow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	var req followRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}

	if err := s.followService.Add(c.UserContext(), id, req.FollowUsername); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "follow added")
}

// RemoveFollow handles DELETE /api/users/:id/follows
func (s *Server) RemoveFollow(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	var req followRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}

	if err := s.followService.Remove(c.UserContext(), id, req.FollowUsername); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "follow removed")
}

// GetFollows handles GET /api/users/:id/follows
func (s *Server) GetFollows(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	ids, err := s.followService.Follows(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, ids)
}

// GetFollowsList handles GET /api/users/:id/followsList
func (s *Server) GetFollowsList(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	profiles, err := s.followService.RetrieveFollows(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, profiles)
}

// GetFollowersList handles GET /api/users/:id/followersList
func (s *Server) GetFollowersList(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	profiles, err := s.followService.RetrieveFollowers(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, profiles)
}
