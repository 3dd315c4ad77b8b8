// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "recipebox/docs" // swagger docs
	"recipebox/internal/config"
	"recipebox/internal/middleware"
	"recipebox/internal/models"
	"recipebox/internal/repository"
	"recipebox/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "recipebox-api"
	tokenAudience = "recipebox-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// Server holds all dependencies and provides the HTTP handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	recipeRepo  repository.RecipeRepository
	requestRepo repository.RoleRequestRepository

	userService        *service.UserService
	recipeService      *service.RecipeService
	roleRequestService *service.RoleRequestService
}

// NewServerWithDeps creates a Server from already-initialized dependencies.
// Tests pass an in-memory database and a nil or fake Redis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	requestRepo := repository.NewRoleRequestRepository(db)

	return &Server{
		config:             cfg,
		db:                 db,
		redis:              redisClient,
		promMiddleware:     middleware.InitMetrics("recipebox-api"),
		userRepo:           userRepo,
		recipeRepo:         recipeRepo,
		requestRepo:        requestRepo,
		userService:        service.NewUserService(userRepo, recipeRepo),
		recipeService:      service.NewRecipeService(recipeRepo),
		roleRequestService: service.NewRoleRequestService(requestRepo, userRepo),
	}
}

// BuildApp constructs the Fiber app with all middleware and routes.
func (s *Server) BuildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Recipebox API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	s.app = app

	s.setupMiddleware(app)
	s.setupRoutes(app)
	return app
}

func (s *Server) setupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry span per request
	app.Use(middleware.Tracing())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func (s *Server) setupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	recipes := api.Group("/recipes")
	recipes.Get("/", s.GetRecipes)
	recipes.Get("/:id/reviews", s.GetReviews)

	// /manage must be registered before /:id
	recipes.Get("/manage", s.AuthRequired(),
		s.RequireRoles(models.RoleWriter, models.RoleAdmin), s.GetManageRecipes)
	recipes.Get("/:id", s.AuthRequired(), s.GetRecipe)
	recipes.Post("/", s.AuthRequired(),
		s.RequireRoles(models.RoleWriter, models.RoleAdmin), s.CreateRecipe)
	recipes.Patch("/:id", s.AuthRequired(),
		s.RequireRoles(models.RoleWriter, models.RoleAdmin), s.UpdateRecipe)
	recipes.Delete("/:id", s.AuthRequired(),
		s.RequireRoles(models.RoleAdmin), s.DeleteRecipe)
	recipes.Post("/:id/reviews", s.AuthRequired(), middleware.RateLimit(
		s.redis, 5, time.Minute, "create_review"), s.CreateReview)
	recipes.Delete("/:id/reviews/:reviewId", s.AuthRequired(), s.DeleteReview)

	// /mine and /count/unread must precede /:id
	requests := api.Group("/role-requests", s.AuthRequired())
	requests.Post("/", s.CreateRoleRequest)
	requests.Get("/mine", s.GetMyRoleRequests)
	requests.Get("/count/unread", s.RequireRoles(models.RoleAdmin), s.GetPendingRequestCount)
	requests.Get("/", s.RequireRoles(models.RoleAdmin), s.GetRoleRequests)
	requests.Patch("/:id/read", s.MarkRoleRequestRead)
	requests.Patch("/:id", s.RequireRoles(models.RoleAdmin), s.ProcessRoleRequest)

	users := api.Group("/users", s.AuthRequired())
	users.Get("/saved-recipes", s.GetSavedRecipes)
	users.Patch("/save-recipe", s.ToggleSavedRecipe)
	users.Get("/", s.RequireRoles(models.RoleAdmin), s.GetUsers)
	users.Post("/", s.RequireRoles(models.RoleAdmin), s.CreateUser)
	users.Patch("/", s.RequireRoles(models.RoleAdmin), s.UpdateUser)
	users.Delete("/", s.RequireRoles(models.RoleAdmin), s.DeleteUser)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database and cache are reachable. A
// missing cache degrades the response but does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns middleware enforcing a valid bearer token. A missing
// or invalid credential yields 401; role checks are layered separately and
// yield 403.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issOk := claims["iss"].(string); !issOk || issuer != tokenIssuer {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audOk := claims["aud"].(string); !audOk || audience != tokenAudience {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		username, _ := claims["username"].(string)

		var roles models.RoleList
		if rawRoles, ok := claims["roles"].([]any); ok {
			for _, raw := range rawRoles {
				label, ok := raw.(string)
				if !ok {
					continue
				}
				if role, err := models.ParseRole(label); err == nil {
					roles = append(roles, role)
				}
			}
		}

		c.Locals("userID", uint(userID))
		c.Locals("username", username)
		c.Locals("roles", roles)

		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// RequireRoles returns middleware that rejects authenticated principals
// lacking every allowed role with 403. Must be placed after AuthRequired.
func (s *Server) RequireRoles(allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals("roles").(models.RoleList)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authorization required"))
		}
		if !roles.HasAny(allowed...) {
			return models.RespondWithError(c,
				models.NewForbiddenError("Forbidden"))
		}
		return c.Next()
	}
}

// generateToken creates a JWT carrying the user's identity and role set.
func (s *Server) generateToken(user *models.User) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"roles":    roles,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// Start builds the app and begins serving.
func (s *Server) Start() error {
	app := s.BuildApp()
	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully stops the HTTP server and closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err.Error())
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr.Error())
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
