package service

import (
	"context"
	"errors"
	"testing"

	"recipebox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRequiresReason(t *testing.T) {
	svc := NewRoleRequestService(&stubRoleRequestRepo{}, &stubUserRepo{})

	_, err := svc.Submit(context.Background(), 1, "")
	assert.EqualError(t, err, "Please provide a reason for your request")
}

func TestSubmitRejectsSecondPendingRequest(t *testing.T) {
	repo := &stubRoleRequestRepo{
		pendingByUser: func(ctx context.Context, userID uint) (*models.RoleRequest, error) {
			return &models.RoleRequest{UserID: userID, Status: models.RoleRequestStatusPending}, nil
		},
	}
	svc := NewRoleRequestService(repo, &stubUserRepo{})

	_, err := svc.Submit(context.Background(), 1, "I want to post recipes")
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "You already have a pending role upgrade request", appErr.Message)
}

func TestSubmitRejectsExistingWriter(t *testing.T) {
	requests := &stubRoleRequestRepo{
		pendingByUser: func(ctx context.Context, userID uint) (*models.RoleRequest, error) {
			return nil, nil
		},
	}
	users := &stubUserRepo{
		getByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{Roles: models.RoleList{models.RoleReader, models.RoleWriter}}, nil
		},
	}
	svc := NewRoleRequestService(requests, users)

	_, err := svc.Submit(context.Background(), 1, "more power please")
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestSubmitSnapshotsCurrentRole(t *testing.T) {
	var created *models.RoleRequest
	requests := &stubRoleRequestRepo{
		pendingByUser: func(ctx context.Context, userID uint) (*models.RoleRequest, error) {
			return nil, nil
		},
		create: func(ctx context.Context, req *models.RoleRequest) error {
			req.ID = 42
			created = req
			return nil
		},
	}
	users := &stubUserRepo{
		getByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{Roles: models.RoleList{models.RoleReader}}, nil
		},
	}
	svc := NewRoleRequestService(requests, users)

	req, err := svc.Submit(context.Background(), 7, "I cook a lot")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, uint(7), req.UserID)
	assert.Equal(t, "Reader", req.CurrentRole)
	assert.Equal(t, models.RoleWriter, req.RequestedRole)
	assert.Equal(t, models.RoleRequestStatusPending, req.Status)
}

func TestProcessRejectsInvalidStatus(t *testing.T) {
	svc := NewRoleRequestService(&stubRoleRequestRepo{}, &stubUserRepo{})

	_, err := svc.Process(context.Background(), 1, "maybe", "")
	assert.EqualError(t, err, "Please provide a valid status (approved or rejected)")
}

func TestProcessApprovalGrantsWriterIdempotently(t *testing.T) {
	user := &models.User{Roles: models.RoleList{models.RoleReader}}
	user.ID = 7
	request := &models.RoleRequest{UserID: 7, Status: models.RoleRequestStatusPending}
	request.ID = 1

	userUpdates := 0
	requests := &stubRoleRequestRepo{
		getByID: func(ctx context.Context, id uint) (*models.RoleRequest, error) {
			return request, nil
		},
		update: func(ctx context.Context, req *models.RoleRequest) error {
			return nil
		},
	}
	users := &stubUserRepo{
		getByID: func(ctx context.Context, id uint) (*models.User, error) {
			return user, nil
		},
		update: func(ctx context.Context, u *models.User) error {
			userUpdates++
			return nil
		},
	}
	svc := NewRoleRequestService(requests, users)

	processed, err := svc.Process(context.Background(), 1, "approved", "welcome aboard")
	require.NoError(t, err)

	assert.Equal(t, models.RoleRequestStatusApproved, processed.Status)
	assert.Equal(t, "welcome aboard", processed.AdminNote)
	assert.True(t, user.Roles.Has(models.RoleWriter))
	assert.Equal(t, 1, userUpdates)

	// Processing again must not duplicate the role or touch the user
	_, err = svc.Process(context.Background(), 1, "approved", "again")
	require.NoError(t, err)
	assert.Equal(t, models.RoleList{models.RoleReader, models.RoleWriter}, user.Roles)
	assert.Equal(t, 1, userUpdates)
}

func TestProcessRejectionLeavesRolesAlone(t *testing.T) {
	request := &models.RoleRequest{UserID: 7, Status: models.RoleRequestStatusPending}
	requests := &stubRoleRequestRepo{
		getByID: func(ctx context.Context, id uint) (*models.RoleRequest, error) {
			return request, nil
		},
		update: func(ctx context.Context, req *models.RoleRequest) error {
			return nil
		},
	}
	svc := NewRoleRequestService(requests, &stubUserRepo{})

	processed, err := svc.Process(context.Background(), 1, "rejected", "not yet")
	require.NoError(t, err)
	assert.Equal(t, models.RoleRequestStatusRejected, processed.Status)
}

func TestMarkReadOwnership(t *testing.T) {
	request := &models.RoleRequest{UserID: 7}
	updated := false
	requests := &stubRoleRequestRepo{
		getByID: func(ctx context.Context, id uint) (*models.RoleRequest, error) {
			return request, nil
		},
		update: func(ctx context.Context, req *models.RoleRequest) error {
			updated = true
			return nil
		},
	}
	svc := NewRoleRequestService(requests, &stubUserRepo{})

	err := svc.MarkRead(context.Background(), 1, 99)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeForbidden, appErr.Code)
	assert.False(t, updated)

	require.NoError(t, svc.MarkRead(context.Background(), 1, 7))
	assert.True(t, updated)
	assert.True(t, request.IsRead)
}
