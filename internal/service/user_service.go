package service

import (
	"context"

	"recipebox/internal/models"
	"recipebox/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements account management and the saved-recipes list.
type UserService struct {
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, recipeRepo repository.RecipeRepository) *UserService {
	return &UserService{userRepo: userRepo, recipeRepo: recipeRepo}
}

type CreateUserInput struct {
	Username string
	Password string
	Roles    models.RoleList
}

type UpdateUserInput struct {
	ID       uint
	Username string
	Roles    models.RoleList
	Active   *bool
	Password string
}

// List returns all users. Password hashes never leave the model's JSON form.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, models.NewValidationError("No users found")
	}
	return users, nil
}

// Register creates an account with the default Reader role. Used by signup.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	return s.Create(ctx, CreateUserInput{Username: username, Password: password})
}

// Create stores a new user with a bcrypt-hashed password. Roles default to
// [Reader] when none are given.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, models.NewValidationError("All fields are required")
	}

	duplicate, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		return nil, models.NewConflictError("Duplicate username")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hashed),
		Roles:    roles,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies an account mutation. All fields except password are
// required; a supplied password is re-hashed.
func (s *UserService) Update(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.ID == 0 || in.Username == "" || len(in.Roles) == 0 || in.Active == nil {
		return nil, models.NewValidationError("All fields except password are required")
	}

	user, err := s.userRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != in.ID {
		return nil, models.NewConflictError("Duplicate username")
	}

	user.Username = in.Username
	user.Roles = in.Roles
	user.Active = *in.Active

	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user unless recipes still reference them.
func (s *UserService) Delete(ctx context.Context, id uint) (*models.User, error) {
	owns, err := s.recipeRepo.OwnedBy(ctx, id)
	if err != nil {
		return nil, err
	}
	if owns {
		return nil, models.NewValidationError("User has assigned recipes")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair against the stored hash.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// SavedRecipes returns the caller's saved recipes with authors resolved.
func (s *UserService) SavedRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	return s.userRepo.SavedRecipes(ctx, userID)
}

// ToggleSavedRecipe adds the recipe to the caller's saved list, or removes
// it if already present, and returns the updated list of saved recipe ids.
func (s *UserService) ToggleSavedRecipe(ctx context.Context, userID, recipeID uint) ([]uint, error) {
	if recipeID == 0 {
		return nil, models.NewValidationError("Recipe ID required")
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.userRepo.SavedRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved := false
	for _, id := range ids {
		if id == recipeID {
			saved = true
			break
		}
	}

	if saved {
		err = s.userRepo.RemoveSavedRecipe(ctx, userID, recipeID)
	} else {
		if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
			return nil, err
		}
		err = s.userRepo.AddSavedRecipe(ctx, userID, recipeID)
	}
	if err != nil {
		return nil, err
	}

	return s.userRepo.SavedRecipeIDs(ctx, userID)
}
