package repository

import (
	"context"
	"errors"

	"recipebox/internal/cache"
	"recipebox/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	SavedRecipes(ctx context.Context, userID uint) ([]models.Recipe, error)
	SavedRecipeIDs(ctx context.Context, userID uint) ([]uint, error)
	AddSavedRecipe(ctx context.Context, userID, recipeID uint) error
	RemoveSavedRecipe(ctx context.Context, userID, recipeID uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername compares usernames case-insensitively and returns (nil, nil)
// when no user matches.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Duplicate username")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Duplicate username")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) SavedRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("SavedRecipes.User").
		First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return user.SavedRecipes, nil
}

func (r *userRepository) SavedRecipeIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Table("user_saved_recipes").
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// AddSavedRecipe writes the join row directly so the recipe record itself is
// never touched.
func (r *userRepository) AddSavedRecipe(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).
		Exec("INSERT INTO user_saved_recipes (user_id, recipe_id) VALUES (?, ?)", userID, recipeID).Error
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *userRepository) RemoveSavedRecipe(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).
		Exec("DELETE FROM user_saved_recipes WHERE user_id = ? AND recipe_id = ?", userID, recipeID).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}
