package server

import (
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// GetReviews returns a recipe's reviews, newest first. Public.
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {array} object{}
// @Failure 404 {object} object{message=string,code=string}
// @Router /recipes/{id}/reviews [get]
func (s *Server) GetReviews(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid recipe ID"))
	}

	reviews, err := s.recipeService.ListReviews(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toReviewResponses(reviews))
}

// CreateReview adds the caller's review and returns the recomputed rating.
// @Summary Add review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body object{rating=int,comment=string} true "Review fields"
// @Success 201 {object} object{message=string,newRating=number,ratingsCount=int}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 404 {object} object{message=string,code=string}
// @Failure 409 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /recipes/{id}/reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid recipe ID"))
	}

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.recipeService.AddReview(c.UserContext(), service.AddReviewInput{
		RecipeID: id,
		UserID:   currentUserID(c),
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// The stored review has no author association loaded; fill it from the
	// token so the response is complete.
	username, _ := c.Locals("username").(string)
	result.Review.User = models.User{Username: username}
	result.Review.User.ID = currentUserID(c)

	middleware.Logger.InfoContext(c.UserContext(), "review added",
		"recipe_id", id, "review_id", result.Review.ID, "rating", req.Rating)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Review added",
		"review":       toReviewResponse(result.Review),
		"newRating":    result.Rating,
		"ratingsCount": result.RatingsCount,
	})
}

// DeleteReview removes a review (author or Admin only) and returns the
// recomputed rating.
// @Summary Delete review
// @Tags reviews
// @Produce json
// @Param id path int true "Recipe ID"
// @Param reviewId path int true "Review ID"
// @Success 200 {object} object{message=string,newRating=number,ratingsCount=int}
// @Failure 403 {object} object{message=string,code=string}
// @Failure 404 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /recipes/{id}/reviews/{reviewId} [delete]
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid recipe ID"))
	}
	reviewID, err := parseID(c, "reviewId")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid review ID"))
	}

	result, err := s.recipeService.DeleteReview(c.UserContext(), service.DeleteReviewInput{
		RecipeID: id,
		ReviewID: reviewID,
		UserID:   currentUserID(c),
		Roles:    currentRoles(c),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "review deleted",
		"recipe_id", id, "review_id", reviewID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Review deleted",
		"newRating":    result.Rating,
		"ratingsCount": result.RatingsCount,
	})
}
