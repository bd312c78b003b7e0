package server

import (
	"vinyls/internal/models"
	"vinyls/internal/service"

	"github.com/gofiber/fiber/v2"
)

type vinylRequest struct {
	ID          *uint   `json:"id"`
	Title       *string `json:"title"`
	Artist      *string `json:"artist"`
	Year        *string `json:"year"`
	ImgVinylURL *string `json:"imgVinylUrl"`
	Info        *string `json:"info"`
}

func (r vinylRequest) params() service.VinylParams {
	return service.VinylParams{
		Title:       r.Title,
		Artist:      r.Artist,
		Year:        r.Year,
		ImgVinylURL: r.ImgVinylURL,
		Info:        r.Info,
	}
}

// CreateVinyl handles POST /api/vinyls
func (s *Server) CreateVinyl(c *fiber.Ctx) error {
	var req vinylRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}
	if req.ID == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("id is required"))
	}
	if err := s.requireSelf(c, *req.ID); err != nil {
		return nil
	}

	id, err := s.vinylService.Add(c.UserContext(), *req.ID, req.params())
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, id)
}

// EditVinyl handles PATCH /api/vinyls/:id/edit
func (s *Server) EditVinyl(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req vinylRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}

	if err := s.vinylService.Edit(c.UserContext(), id, req.params()); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "vinyl updated")
}

// DeleteVinyl handles DELETE /api/vinyls/:id
func (s *Server) DeleteVinyl(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.vinylService.Remove(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "vinyl removed")
}

// GetVinyls handles GET /api/vinyls
func (s *Server) GetVinyls(c *fiber.Ctx) error {
	vinyls, err := s.vinylService.RetrieveAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, vinyls)
}

// GetVinyl handles GET /api/vinyls/:id
func (s *Server) GetVinyl(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	vinyl, err := s.vinylService.RetrieveByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, vinyl)
}

// GetUserVinyls handles GET /api/vinyls/user/:id
func (s *Server) GetUserVinyls(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	vinyls, err := s.vinylService.RetrieveByUserID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, vinyls)
}

// GetFolloweesVinyls handles GET /api/users/:id/followeesVinyls
func (s *Server) GetFolloweesVinyls(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	vinyls, err := s.vinylService.RetrieveFollowees(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, vinyls)
}

// GetFavouriteVinyls handles GET /api/vinyls/user/:id/favourites
func (s *Server) GetFavouriteVinyls(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.requireSelf(c, id); err != nil {
		return nil
	}

	vinyls, err := s.vinylService.RetrieveFavourites(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, vinyls)
}

// SearchVinyls handles GET /api/vinyls/search/:query?
func (s *Server) SearchVinyls(c *fiber.Ctx) error {
	vinyls, err := s.vinylService.Search(c.UserContext(), optionalParam(c, "query"))
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, vinyls)
}

type likeRequest struct {
	UserID *uint `json:"userId"`
}

// AddLike handles PATCH /api/vinyls/:id/likes
func (s *Server) AddLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}
	if req.UserID == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("userId is required"))
	}
	if err := s.requireSelf(c, *req.UserID); err != nil {
		return nil
	}

	if err := s.vinylService.AddLike(c.UserContext(), id, *req.UserID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "like added")
}

// RemoveLike handles DELETE /api/vinyls/:id/likes
func (s *Server) RemoveLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}
	if req.UserID == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("userId is required"))
	}
	if err := s.requireSelf(c, *req.UserID); err != nil {
		return nil
	}

	if err := s.vinylService.RemoveLike(c.UserContext(), id, *req.UserID); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "like removed")
}

// GetLikes handles GET /api/vinyls/:id/likes
func (s *Server) GetLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	likes, err := s.vinylService.Likes(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, likes)
}

// AddComment handles PATCH /api/vinyls/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID *uint   `json:"userId"`
		Text   *string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("invalid request body"))
	}
	if req.UserID == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValueError("userId is required"))
	}
	if err := s.requireSelf(c, *req.UserID); err != nil {
		return nil
	}

	if err := s.vinylService.AddComment(c.UserContext(), id, *req.UserID, req.Text); err != nil {
		return fail(c, err)
	}
	return respondMessage(c, "comment added")
}

// GetComments handles GET /api/vinyls/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.vinylService.Comments(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return respondData(c, comments)
}
