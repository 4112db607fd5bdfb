// Package seed loads demo accounts and recipes into an empty database.
package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebook/backend/internal/models"
	"github.com/pageza/recipebook/backend/internal/repository"
)

type demoUser struct {
	username string
	email    string
	elevated bool
}

var demoUsers = []demoUser{
	{username: "alice", email: "alice@example.com"},
	{username: "bob", email: "bob@example.com"},
	{username: "admin", email: "admin@example.com", elevated: true},
}

// Users creates the demo accounts that do not exist yet and returns how many were
// created. The admin account also receives elevatedRole.
func Users(ctx context.Context, users repository.UserStore, password, elevatedRole string) (int, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	created := 0
	for _, u := range demoUsers {
		exists, err := users.ExistsByUsernameOrEmail(ctx, u.username, u.email)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		roles := models.StringArray{models.RoleUser}
		if u.elevated {
			roles = append(roles, elevatedRole)
		}
		if err := users.Create(ctx, &models.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hashed),
			Roles:        roles,
		}); err != nil {
			return created, fmt.Errorf("failed to create user %s: %w", u.username, err)
		}
		created++
	}
	return created, nil
}

func minutes(n int) *int { return &n }

func ing(name, amount, unit string) models.Ingredient {
	return models.Ingredient{Name: name, Amount: amount, Unit: unit}
}

// DemoRecipes returns a fresh copy of the sample recipes.
func DemoRecipes() []models.Recipe {
	return []models.Recipe{
		{
			Name:            "Potato Gratin",
			Description:     "Layered potatoes baked in cream.",
			Vegetarian:      true,
			Servings:        4,
			Instructions:    "Slice the potatoes thinly. Layer with cream and cheese. Bake in the oven for 45 minutes.",
			PreparationTime: minutes(20),
			CookingTime:     minutes(45),
			Ingredients:     []models.Ingredient{ing("Potato", "1", "kg"), ing("Cream", "300", "ml"), ing("Gruyere", "100", "g")},
			CreatedBy:       "alice",
		},
		{
			Name:            "Roast Chicken",
			Description:     "Sunday roast with lemon and thyme.",
			Vegetarian:      false,
			Servings:        4,
			Instructions:    "Rub the chicken with butter and thyme. Roast in the oven for 90 minutes.",
			PreparationTime: minutes(15),
			CookingTime:     minutes(90),
			Ingredients:     []models.Ingredient{ing("Chicken", "1", "whole"), ing("Lemon", "1", ""), ing("Thyme", "4", "sprigs")},
			CreatedBy:       "bob",
		},
		{
			Name:            "Tomato Salad",
			Description:     "Quick summer salad.",
			Vegetarian:      true,
			Servings:        2,
			Instructions:    "Cut the tomatoes, dress with oil and salt, serve immediately.",
			PreparationTime: minutes(10),
			CookingTime:     minutes(0),
			Ingredients:     []models.Ingredient{ing("Tomato", "4", ""), ing("Olive oil", "2", "tbsp"), ing("Salt", "1", "pinch")},
			CreatedBy:       "alice",
		},
		{
			Name:         "Salmon Teriyaki",
			Description:  "Glazed salmon fillets.",
			Vegetarian:   false,
			Servings:     2,
			Instructions: "Marinate the salmon in teriyaki sauce. Pan fry for 8 minutes.",
			CookingTime:  minutes(8),
			Ingredients:  []models.Ingredient{ing("Salmon", "2", "fillets"), ing("Teriyaki sauce", "4", "tbsp")},
			CreatedBy:    "bob",
		},
	}
}

// Recipes stores the demo recipes unless the database already holds recipes, and
// returns how many were created.
func Recipes(ctx context.Context, recipes repository.RecipeStore, force bool) (int, error) {
	if !force {
		n, err := recipes.Count(ctx)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return 0, nil
		}
	}

	created := 0
	for _, r := range DemoRecipes() {
		r := r
		if _, err := recipes.Save(ctx, &r); err != nil {
			return created, fmt.Errorf("failed to save recipe %s: %w", r.Name, err)
		}
		created++
	}
	return created, nil
}
