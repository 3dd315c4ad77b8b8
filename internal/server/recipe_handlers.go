package server

import (
	"fmt"

	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

type recipeRequest struct {
	Title        string       `json:"title"`
	Image        string       `json:"image"`
	Category     string       `json:"category"`
	Ingredients  models.Lines `json:"ingredients"`
	Instructions models.Lines `json:"instructions"`
	CookingTime  int          `json:"cookingTime"`
	User         uint         `json:"user"`
}

// GetRecipes returns the full public catalog.
// @Summary List recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} object{}
// @Router /recipes [get]
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	recipes, err := s.recipeService.ListRecipes(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toRecipeResponses(recipes))
}

// GetManageRecipes returns the recipes the caller may manage. Admins see
// every recipe, Writers only their own.
// @Summary List manageable recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} object{}
// @Failure 403 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /recipes/manage [get]
func (s *Server) GetManageRecipes(c *fiber.Ctx) error {
	recipes, err := s.recipeService.ListManaged(c.UserContext(), currentUserID(c), currentRoles(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toRecipeResponses(recipes))
}

// GetRecipe returns a single recipe with its author and reviews.
// @Summary Get recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} object{}
// @Failure 404 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /recipes/{id} [get]
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid recipe ID"))
	}

	recipe, err := s.recipeService.GetRecipe(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toRecipeResponse(recipe))
}

// CreateRecipe stores a new recipe owned by the caller and assigns the next
// display ticket.
// @Summary Create recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body object{title=string,image=string,category=string,ingredients=[]string,instructions=[]string,cookingTime=int} true "Recipe fields"
// @Success 201 {object} object{}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 409 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /recipes [post]
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(c.UserContext(), service.CreateRecipeInput{
		UserID:       currentUserID(c),
		Title:        req.Title,
		Image:        req.Image,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	// Reload so the author is attached to the response
	created, err := s.recipeService.GetRecipe(c.UserContext(), recipe.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "recipe created",
		"recipe_id", created.ID, "ticket", created.Ticket)

	return c.Status(fiber.StatusCreated).JSON(toRecipeResponse(created))
}

// UpdateRecipe replaces a recipe's fields.
// @Summary Update recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body object{title=string,image=string,category=string,ingredients=[]string,instructions=[]string,cookingTime=int,user=int} true "Recipe fields"
// @Success 200 {object} object{message=string,id=int}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 404 {object} object{message=string,code=string}
// @Failure 409 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /recipes/{id} [patch]
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid recipe ID"))
	}

	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.UserContext(), id, service.UpdateRecipeInput{
		UserID:       req.User,
		Title:        req.Title,
		Image:        req.Image,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("'%s' updated", recipe.Title),
		"id":      recipe.ID,
	})
}

// DeleteRecipe removes a recipe and its reviews.
// @Summary Delete recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} object{message=string,id=int}
// @Failure 403 {object} object{message=string,code=string}
// @Failure 404 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid recipe ID"))
	}

	recipe, err := s.recipeService.DeleteRecipe(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "recipe deleted",
		"recipe_id", recipe.ID, "title", recipe.Title)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Recipe '%s' deleted", recipe.Title),
		"id":      recipe.ID,
	})
}
