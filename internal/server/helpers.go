package server

import (
	"fmt"
	"strconv"
	"time"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a numeric route parameter. Callers translate failures into a
// validation error.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// currentRoles returns the authenticated user's roles set by AuthRequired.
func currentRoles(c *fiber.Ctx) models.RoleList {
	roles, _ := c.Locals("roles").(models.RoleList)
	return roles
}

type userRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type recipeResponse struct {
	ID           uint      `json:"id"`
	User         userRef   `json:"user"`
	Title        string    `json:"title"`
	Image        string    `json:"image"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	CookingTime  int       `json:"cookingTime"`
	Category     string    `json:"category"`
	Ticket       int64     `json:"ticket"`
	Rating       float64   `json:"rating"`
	RatingsCount int       `json:"ratingsCount"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type reviewResponse struct {
	ID        uint      `json:"id"`
	User      userRef   `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// toRecipeResponse converts a recipe to its API shape, splitting the stored
// newline-joined ingredient and instruction text back into lists.
func toRecipeResponse(r *models.Recipe) recipeResponse {
	return recipeResponse{
		ID:           r.ID,
		User:         userRef{ID: r.User.ID, Username: r.User.Username},
		Title:        r.Title,
		Image:        r.Image,
		Ingredients:  r.IngredientLines(),
		Instructions: r.InstructionLines(),
		CookingTime:  r.CookingTime,
		Category:     r.Category,
		Ticket:       r.Ticket,
		Rating:       r.Rating,
		RatingsCount: r.RatingsCount,
		Completed:    r.Completed,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecipeResponses(recipes []models.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, toRecipeResponse(&recipes[i]))
	}
	return out
}

func toReviewResponse(r *models.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		User:      userRef{ID: r.User.ID, Username: r.User.Username},
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toReviewResponses(reviews []models.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	return out
}
