package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	RecipeKeyPrefix = "recipe:%d"
)

const (
	UserTTL   = 5 * time.Minute
	RecipeTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}
