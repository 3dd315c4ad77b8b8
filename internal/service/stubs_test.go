package service

import (
	"context"

	"recipebox/internal/models"
)

// Function-field stubs so each test wires only the calls it expects.

type stubUserRepo struct {
	getByID           func(ctx context.Context, id uint) (*models.User, error)
	getByUsername     func(ctx context.Context, username string) (*models.User, error)
	list              func(ctx context.Context) ([]models.User, error)
	create            func(ctx context.Context, user *models.User) error
	update            func(ctx context.Context, user *models.User) error
	deleteFn          func(ctx context.Context, id uint) error
	savedRecipes      func(ctx context.Context, userID uint) ([]models.Recipe, error)
	savedRecipeIDs    func(ctx context.Context, userID uint) ([]uint, error)
	addSavedRecipe    func(ctx context.Context, userID, recipeID uint) error
	removeSavedRecipe func(ctx context.Context, userID, recipeID uint) error
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByID(ctx, id)
}
func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsername(ctx, username)
}
func (s *stubUserRepo) List(ctx context.Context) ([]models.User, error) {
	return s.list(ctx)
}
func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	return s.create(ctx, user)
}
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	return s.update(ctx, user)
}
func (s *stubUserRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *stubUserRepo) SavedRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	return s.savedRecipes(ctx, userID)
}
func (s *stubUserRepo) SavedRecipeIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.savedRecipeIDs(ctx, userID)
}
func (s *stubUserRepo) AddSavedRecipe(ctx context.Context, userID, recipeID uint) error {
	return s.addSavedRecipe(ctx, userID, recipeID)
}
func (s *stubUserRepo) RemoveSavedRecipe(ctx context.Context, userID, recipeID uint) error {
	return s.removeSavedRecipe(ctx, userID, recipeID)
}

type stubRecipeRepo struct {
	getByID         func(ctx context.Context, id uint) (*models.Recipe, error)
	getByTitle      func(ctx context.Context, title string) (*models.Recipe, error)
	list            func(ctx context.Context, ownerID *uint) ([]models.Recipe, error)
	create          func(ctx context.Context, recipe *models.Recipe) error
	update          func(ctx context.Context, recipe *models.Recipe) error
	deleteFn        func(ctx context.Context, id uint) error
	ownedBy         func(ctx context.Context, userID uint) (bool, error)
	listReviews     func(ctx context.Context, recipeID uint) ([]models.Review, error)
	getReview       func(ctx context.Context, recipeID, reviewID uint) (*models.Review, error)
	createReview    func(ctx context.Context, review *models.Review) error
	deleteReview    func(ctx context.Context, recipeID, reviewID uint) error
	saveRatingStats func(ctx context.Context, recipeID uint, rating float64, count int) error
}

func (s *stubRecipeRepo) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.getByID(ctx, id)
}
func (s *stubRecipeRepo) GetByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	return s.getByTitle(ctx, title)
}
func (s *stubRecipeRepo) List(ctx context.Context, ownerID *uint) ([]models.Recipe, error) {
	return s.list(ctx, ownerID)
}
func (s *stubRecipeRepo) Create(ctx context.Context, recipe *models.Recipe) error {
	return s.create(ctx, recipe)
}
func (s *stubRecipeRepo) Update(ctx context.Context, recipe *models.Recipe) error {
	return s.update(ctx, recipe)
}
func (s *stubRecipeRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *stubRecipeRepo) OwnedBy(ctx context.Context, userID uint) (bool, error) {
	return s.ownedBy(ctx, userID)
}
func (s *stubRecipeRepo) ListReviews(ctx context.Context, recipeID uint) ([]models.Review, error) {
	return s.listReviews(ctx, recipeID)
}
func (s *stubRecipeRepo) GetReview(ctx context.Context, recipeID, reviewID uint) (*models.Review, error) {
	return s.getReview(ctx, recipeID, reviewID)
}
func (s *stubRecipeRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return s.createReview(ctx, review)
}
func (s *stubRecipeRepo) DeleteReview(ctx context.Context, recipeID, reviewID uint) error {
	return s.deleteReview(ctx, recipeID, reviewID)
}
func (s *stubRecipeRepo) SaveRatingStats(ctx context.Context, recipeID uint, rating float64, count int) error {
	return s.saveRatingStats(ctx, recipeID, rating, count)
}

type stubRoleRequestRepo struct {
	getByID       func(ctx context.Context, id uint) (*models.RoleRequest, error)
	pendingByUser func(ctx context.Context, userID uint) (*models.RoleRequest, error)
	listAll       func(ctx context.Context) ([]models.RoleRequest, error)
	listByUser    func(ctx context.Context, userID uint) ([]models.RoleRequest, error)
	create        func(ctx context.Context, req *models.RoleRequest) error
	update        func(ctx context.Context, req *models.RoleRequest) error
	countPending  func(ctx context.Context) (int64, error)
}

func (s *stubRoleRequestRepo) GetByID(ctx context.Context, id uint) (*models.RoleRequest, error) {
	return s.getByID(ctx, id)
}
func (s *stubRoleRequestRepo) PendingByUser(ctx context.Context, userID uint) (*models.RoleRequest, error) {
	return s.pendingByUser(ctx, userID)
}
func (s *stubRoleRequestRepo) ListAll(ctx context.Context) ([]models.RoleRequest, error) {
	return s.listAll(ctx)
}
func (s *stubRoleRequestRepo) ListByUser(ctx context.Context, userID uint) ([]models.RoleRequest, error) {
	return s.listByUser(ctx, userID)
}
func (s *stubRoleRequestRepo) Create(ctx context.Context, req *models.RoleRequest) error {
	return s.create(ctx, req)
}
func (s *stubRoleRequestRepo) Update(ctx context.Context, req *models.RoleRequest) error {
	return s.update(ctx, req)
}
func (s *stubRoleRequestRepo) CountPending(ctx context.Context) (int64, error) {
	return s.countPending(ctx)
}
