package service

import (
	"context"

	"recipebox/internal/models"
	"recipebox/internal/repository"
)

// RoleRequestService implements the Reader-to-Writer upgrade workflow.
type RoleRequestService struct {
	requestRepo repository.RoleRequestRepository
	userRepo    repository.UserRepository
}

// NewRoleRequestService returns a new RoleRequestService.
func NewRoleRequestService(requestRepo repository.RoleRequestRepository, userRepo repository.UserRepository) *RoleRequestService {
	return &RoleRequestService{requestRepo: requestRepo, userRepo: userRepo}
}

// Submit creates a pending upgrade request, snapshotting the requester's
// current roles. A user may have at most one pending request, and Writers
// and Admins have nothing to request.
func (s *RoleRequestService) Submit(ctx context.Context, userID uint, reason string) (*models.RoleRequest, error) {
	if reason == "" {
		return nil, models.NewValidationError("Please provide a reason for your request")
	}

	pending, err := s.requestRepo.PendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, models.NewConflictError("You already have a pending role upgrade request")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Roles.HasAny(models.RoleWriter, models.RoleAdmin) {
		return nil, models.NewConflictError("You already have Writer or Admin privileges")
	}

	req := &models.RoleRequest{
		UserID:        userID,
		CurrentRole:   user.Roles.String(),
		RequestedRole: models.RoleWriter,
		Reason:        reason,
		Status:        models.RoleRequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListAll returns every request, newest first, for the admin view.
func (s *RoleRequestService) ListAll(ctx context.Context) ([]models.RoleRequest, error) {
	return s.requestRepo.ListAll(ctx)
}

// ListMine returns the caller's own requests, newest first.
func (s *RoleRequestService) ListMine(ctx context.Context, userID uint) ([]models.RoleRequest, error) {
	return s.requestRepo.ListByUser(ctx, userID)
}

// Process applies an admin decision. Approval grants the Writer role
// idempotently: processing the same request twice never adds it twice.
func (s *RoleRequestService) Process(ctx context.Context, id uint, decision, adminNote string) (*models.RoleRequest, error) {
	status, ok := models.ParseRoleRequestStatus(decision)
	if !ok {
		return nil, models.NewValidationError("Please provide a valid status (approved or rejected)")
	}

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Status = status
	req.AdminNote = adminNote

	if status == models.RoleRequestStatusApproved {
		user, err := s.userRepo.GetByID(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if user.Roles.Add(models.RoleWriter) {
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// MarkRead flags the request as read. Only its owner may do so.
func (s *RoleRequestService) MarkRead(ctx context.Context, id, userID uint) error {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.UserID != userID {
		return models.NewForbiddenError("Not authorized")
	}

	req.IsRead = true
	return s.requestRepo.Update(ctx, req)
}

// CountPending returns the number of pending requests, used as the admin
// notification badge.
func (s *RoleRequestService) CountPending(ctx context.Context) (int64, error) {
	return s.requestRepo.CountPending(ctx)
}
