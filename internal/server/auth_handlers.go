package server

import (
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account with the default Reader role and returns a
// token so the client is logged in immediately.
// @Summary User signup
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 409 {object} object{message=string,code=string}
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userService.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user signed up",
		"user_id", user.ID, "username", user.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login verifies credentials and returns a signed token.
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} object{message=string,code=string}
// @Failure 401 {object} object{message=string,code=string}
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		"user_id", user.ID, "username", user.Username)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
