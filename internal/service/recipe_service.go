// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repository"
)

// RecipeService owns the recipe aggregate: recipe CRUD plus review
// mutations and the derived rating statistics.
type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

type CreateRecipeInput struct {
	UserID       uint
	Title        string
	Image        string
	Category     string
	Ingredients  models.Lines
	Instructions models.Lines
	CookingTime  int
}

type UpdateRecipeInput struct {
	UserID       uint
	Title        string
	Image        string
	Category     string
	Ingredients  models.Lines
	Instructions models.Lines
	CookingTime  int
}

type AddReviewInput struct {
	RecipeID uint
	UserID   uint
	Rating   int
	Comment  string
}

type DeleteReviewInput struct {
	RecipeID uint
	ReviewID uint
	UserID   uint
	Roles    models.RoleList
}

// ReviewResult carries a review mutation's outcome together with the
// recomputed aggregate statistics.
type ReviewResult struct {
	Review       *models.Review
	Rating       float64
	RatingsCount int
}

// ListRecipes returns all recipes, author attached.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.recipeRepo.List(ctx, nil)
}

// ListManaged returns the recipes the caller may manage: all of them for
// Admins, only their own for Writers.
func (s *RecipeService) ListManaged(ctx context.Context, userID uint, roles models.RoleList) ([]models.Recipe, error) {
	if roles.Has(models.RoleAdmin) {
		return s.recipeRepo.List(ctx, nil)
	}
	return s.recipeRepo.List(ctx, &userID)
}

// GetRecipe returns a single recipe with author and reviews.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

// CreateRecipe validates, normalizes and stores a new recipe, assigning the
// next display ticket.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if len(in.Ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if len(in.Instructions) == 0 {
		missing = append(missing, "instructions")
	}
	if in.CookingTime <= 0 {
		missing = append(missing, "cookingTime")
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Missing required fields: " + strings.Join(missing, ", "))
	}

	duplicate, err := s.recipeRepo.GetByTitle(ctx, in.Title)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		return nil, models.NewConflictError("Duplicate recipe title")
	}

	image := in.Image
	if image == "" {
		image = models.DefaultRecipeImage
	}
	category := in.Category
	if category == "" {
		category = models.DefaultRecipeCategory
	}

	recipe := &models.Recipe{
		UserID:       in.UserID,
		Title:        in.Title,
		Image:        image,
		Category:     category,
		Ingredients:  in.Ingredients.Join(),
		Instructions: in.Instructions.Join(),
		CookingTime:  in.CookingTime,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipe applies all supplied fields to an existing recipe. The new
// title must not collide with another recipe's title.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, in UpdateRecipeInput) (*models.Recipe, error) {
	if in.UserID == 0 || in.Title == "" || len(in.Ingredients) == 0 || len(in.Instructions) == 0 {
		return nil, models.NewValidationError("All fields are required")
	}

	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.recipeRepo.GetByTitle(ctx, in.Title)
	if err != nil {
		return nil, err
	}
	if duplicate != nil && duplicate.ID != id {
		return nil, models.NewConflictError("Duplicate recipe title")
	}

	recipe.UserID = in.UserID
	recipe.Title = in.Title
	recipe.Ingredients = in.Ingredients.Join()
	recipe.Instructions = in.Instructions.Join()
	recipe.CookingTime = in.CookingTime
	recipe.Image = in.Image
	if recipe.Image == "" {
		recipe.Image = models.DefaultRecipeImage
	}
	if in.Category != "" {
		recipe.Category = in.Category
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe removes the recipe and reports its prior title and id.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return recipe, nil
}

// AddReview appends a review and recomputes the recipe's aggregate rating
// from the full review list.
func (s *RecipeService) AddReview(ctx context.Context, in AddReviewInput) (*ReviewResult, error) {
	if in.Rating == 0 || in.Comment == "" {
		return nil, models.NewValidationError("Rating and comment are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}

	for _, review := range recipe.Reviews {
		if review.UserID == in.UserID {
			return nil, models.NewConflictError("Recipe already reviewed")
		}
	}

	review := &models.Review{
		RecipeID: in.RecipeID,
		UserID:   in.UserID,
		Rating:   in.Rating,
		Comment:  in.Comment,
	}
	if err := s.recipeRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	rating, count, err := s.recomputeRating(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}

	return &ReviewResult{Review: review, Rating: rating, RatingsCount: count}, nil
}

// ListReviews returns a recipe's reviews newest first.
func (s *RecipeService) ListReviews(ctx context.Context, recipeID uint) ([]models.Review, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.recipeRepo.ListReviews(ctx, recipeID)
}

// DeleteReview removes a review if the caller authored it or is an Admin,
// then recomputes the aggregate rating.
func (s *RecipeService) DeleteReview(ctx context.Context, in DeleteReviewInput) (*ReviewResult, error) {
	if _, err := s.recipeRepo.GetByID(ctx, in.RecipeID); err != nil {
		return nil, err
	}

	review, err := s.recipeRepo.GetReview(ctx, in.RecipeID, in.ReviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != in.UserID && !in.Roles.Has(models.RoleAdmin) {
		return nil, models.NewForbiddenError("Not authorized to delete this review")
	}

	if err := s.recipeRepo.DeleteReview(ctx, in.RecipeID, in.ReviewID); err != nil {
		return nil, err
	}

	rating, count, err := s.recomputeRating(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}

	return &ReviewResult{Review: review, Rating: rating, RatingsCount: count}, nil
}

// recomputeRating derives the aggregate fields from the full review list and
// persists them. Always a full recomputation, never an incremental
// adjustment.
func (s *RecipeService) recomputeRating(ctx context.Context, recipeID uint) (float64, int, error) {
	reviews, err := s.recipeRepo.ListReviews(ctx, recipeID)
	if err != nil {
		return 0, 0, err
	}

	rating := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	if err := s.recipeRepo.SaveRatingStats(ctx, recipeID, rating, len(reviews)); err != nil {
		return 0, 0, err
	}
	return rating, len(reviews), nil
}
