package repository

import (
	"context"
	"errors"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// RoleRequestRepository defines persistence operations for role upgrade requests.
type RoleRequestRepository interface {
	GetByID(ctx context.Context, id uint) (*models.RoleRequest, error)
	PendingByUser(ctx context.Context, userID uint) (*models.RoleRequest, error)
	ListAll(ctx context.Context) ([]models.RoleRequest, error)
	ListByUser(ctx context.Context, userID uint) ([]models.RoleRequest, error)
	Create(ctx context.Context, req *models.RoleRequest) error
	Update(ctx context.Context, req *models.RoleRequest) error
	CountPending(ctx context.Context) (int64, error)
}

type roleRequestRepository struct {
	db *gorm.DB
}

// NewRoleRequestRepository returns a new RoleRequestRepository implementation.
func NewRoleRequestRepository(db *gorm.DB) RoleRequestRepository {
	return &roleRequestRepository{db: db}
}

func (r *roleRequestRepository) GetByID(ctx context.Context, id uint) (*models.RoleRequest, error) {
	var req models.RoleRequest
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Role request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

// PendingByUser returns the user's pending request, or (nil, nil) when none
// exists.
func (r *roleRequestRepository) PendingByUser(ctx context.Context, userID uint) (*models.RoleRequest, error) {
	var req models.RoleRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.RoleRequestStatusPending).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *roleRequestRepository) ListAll(ctx context.Context) ([]models.RoleRequest, error) {
	var reqs []models.RoleRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *roleRequestRepository) ListByUser(ctx context.Context, userID uint) ([]models.RoleRequest, error) {
	var reqs []models.RoleRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reqs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reqs, nil
}

func (r *roleRequestRepository) Create(ctx context.Context, req *models.RoleRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *roleRequestRepository) Update(ctx context.Context, req *models.RoleRequest) error {
	if err := r.db.WithContext(ctx).Save(req).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *roleRequestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RoleRequest{}).
		Where("status = ?", models.RoleRequestStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
