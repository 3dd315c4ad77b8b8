// Command seed populates the database with an admin account, a few sample
// recipes, and optional faked reader accounts and reviews for local
// development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"recipebox/internal/config"
	"recipebox/internal/database"
	"recipebox/internal/models"
	"recipebox/internal/repository"
	"recipebox/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	adminUser := flag.String("admin", "admin", "Admin username to create")
	adminPass := flag.String("password", "changeme123", "Admin password")
	withSamples := flag.Bool("samples", true, "Create sample recipes")
	readerCount := flag.Int("readers", 5, "Faked reader accounts to create")
	withReviews := flag.Bool("reviews", true, "Have faked readers review the samples")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	users := service.NewUserService(userRepo, recipeRepo)
	recipes := service.NewRecipeService(recipeRepo)

	admin, err := users.Create(ctx, service.CreateUserInput{
		Username: *adminUser,
		Password: *adminPass,
		Roles:    models.RoleList{models.RoleReader, models.RoleWriter, models.RoleAdmin},
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	log.Printf("Created admin %q (id %d)", admin.Username, admin.ID)

	if !*withSamples {
		return
	}

	samples := []service.CreateRecipeInput{
		{
			UserID:       admin.ID,
			Title:        "Tomato Soup",
			Category:     "Soups",
			Ingredients:  models.Lines{"6 tomatoes", "1 onion", "2 cups stock", "salt"},
			Instructions: models.Lines{"Chop the vegetables", "Simmer in stock for 30 minutes", "Blend and season"},
			CookingTime:  40,
		},
		{
			UserID:       admin.ID,
			Title:        "Garlic Bread",
			Category:     "Sides",
			Ingredients:  models.Lines{"1 baguette", "4 cloves garlic", "100g butter", "parsley"},
			Instructions: models.Lines{"Mix garlic into softened butter", "Spread over sliced bread", "Bake at 200C for 10 minutes"},
			CookingTime:  15,
		},
		{
			UserID:       admin.ID,
			Title:        "Pancakes",
			Category:     "Breakfast",
			Ingredients:  models.Lines{"2 cups flour", "2 eggs", "1.5 cups milk", "pinch of salt"},
			Instructions: models.Lines{"Whisk everything into a batter", "Rest for 10 minutes", "Fry in a hot buttered pan"},
			CookingTime:  25,
		},
	}

	seeded := make([]*models.Recipe, 0, len(samples))
	for _, in := range samples {
		recipe, err := recipes.CreateRecipe(ctx, in)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", in.Title, err)
		}
		log.Printf("Created recipe %q (ticket %d)", recipe.Title, recipe.Ticket)
		seeded = append(seeded, recipe)
	}

	for i := 0; i < *readerCount; i++ {
		reader, err := users.Create(ctx, service.CreateUserInput{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Password: gofakeit.Password(true, true, true, false, false, 16),
			Roles:    models.RoleList{models.RoleReader},
		})
		if err != nil {
			log.Fatalf("Failed to seed reader: %v", err)
		}
		log.Printf("Created reader %q (id %d)", reader.Username, reader.ID)

		if !*withReviews {
			continue
		}
		for _, recipe := range seeded {
			if gofakeit.Bool() {
				continue
			}
			result, err := recipes.AddReview(ctx, service.AddReviewInput{
				RecipeID: recipe.ID,
				UserID:   reader.ID,
				Rating:   gofakeit.Number(2, 5),
				Comment:  gofakeit.Sentence(8),
			})
			if err != nil {
				log.Fatalf("Failed to seed review on %q: %v", recipe.Title, err)
			}
			log.Printf("Reviewed %q (rating now %.2f from %d)",
				recipe.Title, result.Rating, result.RatingsCount)
		}
	}
}
