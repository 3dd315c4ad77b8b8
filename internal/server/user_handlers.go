package server

import (
	"fmt"

	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/service"
	"recipebox/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type createUserRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type updateUserRequest struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Active   *bool    `json:"active"`
	Password string   `json:"password"`
}

type deleteUserRequest struct {
	ID uint `json:"id"`
}

type saveRecipeRequest struct {
	RecipeID uint `json:"recipeId"`
}

func parseRoles(labels []string) (models.RoleList, error) {
	var roles models.RoleList
	for _, label := range labels {
		role, err := models.ParseRole(label)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// GetUsers returns every account for the admin dashboard.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// CreateUser creates an account with an explicit role set.
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string,roles=[]string} true "User fields"
// @Success 201 {object} object{message=string,user=models.User}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 409 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	roles, err := parseRoles(req.Roles)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userService.Create(c.UserContext(), service.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Roles:    roles,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user created",
		"user_id", user.ID, "username", user.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("New user %s created", user.Username),
		"user":    user,
	})
}

// UpdateUser modifies an account. The target id travels in the body.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{id=int,username=string,roles=[]string,active=bool,password=string} true "User fields"
// @Success 200 {object} object{message=string,user=models.User}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 404 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /users [patch]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	roles, err := parseRoles(req.Roles)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userService.Update(c.UserContext(), service.UpdateUserInput{
		ID:       req.ID,
		Username: req.Username,
		Roles:    roles,
		Active:   req.Active,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("%s updated", user.Username),
		"user":    user,
	})
}

// DeleteUser removes an account unless recipes still reference it.
// @Summary Delete user
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{id=int} true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{message=string,code=string}
// @Failure 409 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /users [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	var req deleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return models.RespondWithError(c, models.NewValidationError("User ID required"))
	}

	user, err := s.userService.Delete(c.UserContext(), req.ID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user deleted",
		"user_id", user.ID, "username", user.Username)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Username %s with ID %d deleted", user.Username, user.ID),
	})
}

// GetSavedRecipes returns the caller's saved recipes.
// @Summary List saved recipes
// @Tags users
// @Produce json
// @Success 200 {array} object{}
// @Security BearerAuth
// @Router /users/saved-recipes [get]
func (s *Server) GetSavedRecipes(c *fiber.Ctx) error {
	recipes, err := s.userService.SavedRecipes(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(toRecipeResponses(recipes))
}

// ToggleSavedRecipe adds or removes a recipe from the caller's saved list
// and returns the updated id list.
// @Summary Toggle saved recipe
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{recipeId=int} true "Recipe ID"
// @Success 200 {object} object{savedRecipes=[]int}
// @Failure 404 {object} object{message=string,code=string}
// @Security BearerAuth
// @Router /users/save-recipe [patch]
func (s *Server) ToggleSavedRecipe(c *fiber.Ctx) error {
	var req saveRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	ids, err := s.userService.ToggleSavedRecipe(c.UserContext(), currentUserID(c), req.RecipeID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"savedRecipes": ids,
	})
}
