package repository

import (
	"context"
	"errors"

	"recipebox/internal/cache"
	"recipebox/internal/models"

	"gorm.io/gorm"
)

const ticketCounterName = "recipe_ticket"

// RecipeRepository defines persistence operations for recipes and their
// embedded reviews.
type RecipeRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	GetByTitle(ctx context.Context, title string) (*models.Recipe, error)
	List(ctx context.Context, ownerID *uint) ([]models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
	OwnedBy(ctx context.Context, userID uint) (bool, error)
	ListReviews(ctx context.Context, recipeID uint) ([]models.Review, error)
	GetReview(ctx context.Context, recipeID, reviewID uint) (*models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, recipeID, reviewID uint) error
	SaveRatingStats(ctx context.Context, recipeID uint, rating float64, count int) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	key := cache.RecipeKey(id)

	err := cache.Aside(ctx, key, &recipe, cache.RecipeTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("User").
			Preload("Reviews").
			First(&recipe, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Recipe", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByTitle compares titles case-insensitively and returns (nil, nil) when
// no recipe matches.
func (r *recipeRepository) GetByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Where("LOWER(title) = LOWER(?)", title).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

// List returns recipes with their author preloaded, newest first. A non-nil
// ownerID restricts the result to that user's recipes.
func (r *recipeRepository) List(ctx context.Context, ownerID *uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	q := r.db.WithContext(ctx).Preload("User").Order("created_at desc")
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// Create assigns the next display ticket and inserts the recipe in one
// transaction so tickets stay strictly increasing even under concurrent
// creations.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticket, err := nextTicket(tx)
		if err != nil {
			return err
		}
		recipe.Ticket = ticket
		return tx.Create(recipe).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Duplicate recipe title")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// nextTicket bumps the persistent ticket counter and returns the new value.
// The UPDATE takes a row lock, serializing concurrent creations.
func nextTicket(tx *gorm.DB) (int64, error) {
	res := tx.Model(&models.TicketCounter{}).
		Where("name = ?", ticketCounterName).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		counter := models.TicketCounter{Name: ticketCounterName, Value: models.FirstTicket}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
		return counter.Value, nil
	}

	var counter models.TicketCounter
	if err := tx.First(&counter, "name = ?", ticketCounterName).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Save(recipe).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Duplicate recipe title")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

func (r *recipeRepository) OwnedBy(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListReviews returns a recipe's reviews newest first with their author
// preloaded.
func (r *recipeRepository) ListReviews(ctx context.Context, recipeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *recipeRepository) GetReview(ctx context.Context, recipeID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND id = ?", recipeID, reviewID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", reviewID)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *recipeRepository) CreateReview(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Recipe already reviewed")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, review.RecipeID)
	return nil
}

func (r *recipeRepository) DeleteReview(ctx context.Context, recipeID, reviewID uint) error {
	err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND id = ?", recipeID, reviewID).
		Delete(&models.Review{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

// SaveRatingStats persists the derived aggregate fields. A map update is
// used so rating can be written back to zero.
func (r *recipeRepository) SaveRatingStats(ctx context.Context, recipeID uint, rating float64, count int) error {
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]any{
			"rating":        rating,
			"ratings_count": count,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}
