package service

import (
	"context"
	"errors"
	"testing"

	"recipebox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPassword(t *testing.T) {
	var created *models.User
	users := &stubUserRepo{
		getByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return nil, nil
		},
		create: func(ctx context.Context, user *models.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	svc := NewUserService(users, &stubRecipeRepo{})

	user, err := svc.Create(context.Background(), CreateUserInput{
		Username: "alice",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.Equal(t, models.RoleList{models.RoleReader}, user.Roles)
	assert.True(t, user.Active)
}

func TestCreateUserDuplicate(t *testing.T) {
	users := &stubUserRepo{
		getByUsername: func(ctx context.Context, username string) (*models.User, error) {
			existing := &models.User{Username: "alice"}
			existing.ID = 3
			return existing, nil
		},
	}
	svc := NewUserService(users, &stubRecipeRepo{})

	_, err := svc.Create(context.Background(), CreateUserInput{
		Username: "Alice",
		Password: "password123",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "Duplicate username", appErr.Message)
}

func TestCreateUserMissingFields(t *testing.T) {
	svc := NewUserService(&stubUserRepo{}, &stubRecipeRepo{})

	_, err := svc.Create(context.Background(), CreateUserInput{Username: "alice"})
	assert.EqualError(t, err, "All fields are required")
}

func TestDeleteUserBlockedByRecipes(t *testing.T) {
	recipes := &stubRecipeRepo{
		ownedBy: func(ctx context.Context, userID uint) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(&stubUserRepo{}, recipes)

	_, err := svc.Delete(context.Background(), 1)
	assert.EqualError(t, err, "User has assigned recipes")
}

func TestDeleteUserReturnsDeletedAccount(t *testing.T) {
	target := &models.User{Username: "bob"}
	target.ID = 4
	users := &stubUserRepo{
		getByID: func(ctx context.Context, id uint) (*models.User, error) {
			return target, nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			return nil
		},
	}
	recipes := &stubRecipeRepo{
		ownedBy: func(ctx context.Context, userID uint) (bool, error) {
			return false, nil
		},
	}
	svc := NewUserService(users, recipes)

	user, err := svc.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}

func TestAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &models.User{Username: "alice", Password: string(hashed), Active: true}
	account.ID = 1

	users := &stubUserRepo{
		getByUsername: func(ctx context.Context, username string) (*models.User, error) {
			if username == "alice" {
				return account, nil
			}
			return nil, nil
		},
	}
	svc := NewUserService(users, &stubRecipeRepo{})

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "alice", "nope")
		assert.EqualError(t, err, "Invalid credentials")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "mallory", "password123")
		assert.EqualError(t, err, "Invalid credentials")
	})

	t.Run("deactivated account", func(t *testing.T) {
		account.Active = false
		defer func() { account.Active = true }()

		_, err := svc.Authenticate(context.Background(), "alice", "password123")
		assert.EqualError(t, err, "Invalid credentials")
	})
}

func TestToggleSavedRecipe(t *testing.T) {
	savedIDs := []uint{2}
	added, removed := 0, 0

	users := &stubUserRepo{
		getByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{}, nil
		},
		savedRecipeIDs: func(ctx context.Context, userID uint) ([]uint, error) {
			return savedIDs, nil
		},
		addSavedRecipe: func(ctx context.Context, userID, recipeID uint) error {
			added++
			savedIDs = append(savedIDs, recipeID)
			return nil
		},
		removeSavedRecipe: func(ctx context.Context, userID, recipeID uint) error {
			removed++
			savedIDs = []uint{}
			return nil
		},
	}
	recipes := &stubRecipeRepo{
		getByID: func(ctx context.Context, id uint) (*models.Recipe, error) {
			if id == 99 {
				return nil, models.NewNotFoundError("Recipe", id)
			}
			return &models.Recipe{}, nil
		},
	}
	svc := NewUserService(users, recipes)

	t.Run("requires recipe id", func(t *testing.T) {
		_, err := svc.ToggleSavedRecipe(context.Background(), 1, 0)
		assert.EqualError(t, err, "Recipe ID required")
	})

	t.Run("adds when absent", func(t *testing.T) {
		ids, err := svc.ToggleSavedRecipe(context.Background(), 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 1, added)
		assert.Contains(t, ids, uint(5))
	})

	t.Run("missing recipe cannot be saved", func(t *testing.T) {
		_, err := svc.ToggleSavedRecipe(context.Background(), 1, 99)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("removes when present", func(t *testing.T) {
		ids, err := svc.ToggleSavedRecipe(context.Background(), 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.NotContains(t, ids, uint(2))
	})
}
