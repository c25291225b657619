// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupForm {
	return SignupForm{
		DisplayName:     "Ana",
		Email:           "user@example.com",
		Password:        "Password123!",
		ConfirmPassword: "Password123!",
	}
}

func TestSignup(t *testing.T) {
	t.Run("valid form passes", func(t *testing.T) {
		result := Signup(validSignup())
		assert.True(t, result.Valid(), "unexpected errors: %v", result)
	})

	t.Run("invalid email", func(t *testing.T) {
		f := validSignup()
		f.Email = "not-an-email"
		result := Signup(f)
		assert.Equal(t, "Please enter a valid email address", result["email"])
	})

	t.Run("missing email", func(t *testing.T) {
		f := validSignup()
		f.Email = ""
		result := Signup(f)
		assert.Equal(t, "Email is required", result["email"])
	})

	t.Run("short password reports length before strength", func(t *testing.T) {
		f := validSignup()
		f.Password = "123"
		f.ConfirmPassword = "123"
		result := Signup(f)
		assert.Equal(t, "Password must be at least 6 characters long", result["password"])
	})

	t.Run("weak password", func(t *testing.T) {
		f := validSignup()
		f.Password = "password"
		f.ConfirmPassword = "password"
		result := Signup(f)
		assert.Equal(t, "Password must contain uppercase, lowercase, and numbers", result["password"])
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		f := validSignup()
		f.ConfirmPassword = "Password123?"
		result := Signup(f)
		assert.Equal(t, "Passwords do not match", result["confirmPassword"])
	})

	t.Run("short display name", func(t *testing.T) {
		f := validSignup()
		f.DisplayName = "A"
		result := Signup(f)
		assert.Equal(t, "Display name must be at least 2 characters long", result["displayName"])
	})

	t.Run("independent fields reported together", func(t *testing.T) {
		result := Signup(SignupForm{
			DisplayName: "A",
			Email:       "not-an-email",
			Password:    "password",
		})
		require.Len(t, result, 4)
		assert.Equal(t, "Display name must be at least 2 characters long", result["displayName"])
		assert.Equal(t, "Please enter a valid email address", result["email"])
		assert.Equal(t, "Password must contain uppercase, lowercase, and numbers", result["password"])
		assert.Equal(t, "Please confirm your password", result["confirmPassword"])
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		result := Login(LoginForm{Email: "user@example.com", Password: "Password123!"})
		assert.True(t, result.Valid())
	})

	t.Run("no strength check at login", func(t *testing.T) {
		result := Login(LoginForm{Email: "user@example.com", Password: "password"})
		assert.True(t, result.Valid())
	})

	t.Run("short password", func(t *testing.T) {
		result := Login(LoginForm{Email: "user@example.com", Password: "123"})
		assert.Equal(t, "Password must be at least 6 characters long", result["password"])
	})
}

func validRecipe() RecipeForm {
	return RecipeForm{
		Title:       "Tomato Pasta",
		Description: "A quick weeknight pasta with fresh tomatoes.",
		ImageURL:    "https://example.com/pasta.jpg",
		Category:    "Italian",
		Difficulty:  "Easy",
		PrepTime:    10,
		CookTime:    20,
		Servings:    2,
		Ingredients: []string{"Pasta", "Tomatoes", "Olive oil"},
		Steps:       []string{"Boil the pasta until al dente.", "Toss with the sauce."},
	}
}

func TestRecipe(t *testing.T) {
	t.Run("valid form passes", func(t *testing.T) {
		result := Recipe(validRecipe())
		assert.True(t, result.Valid(), "unexpected errors: %v", result)
	})

	t.Run("short title", func(t *testing.T) {
		f := validRecipe()
		f.Title = "Ab"
		result := Recipe(f)
		assert.Equal(t, "Recipe title must be at least 3 characters long", result["title"])
	})

	t.Run("long title", func(t *testing.T) {
		f := validRecipe()
		f.Title = strings.Repeat("a", 101)
		result := Recipe(f)
		assert.Equal(t, "Recipe title must not exceed 100 characters", result["title"])
	})

	t.Run("title counted in characters not bytes", func(t *testing.T) {
		f := validRecipe()
		f.Title = "味噌汁"
		result := Recipe(f)
		assert.True(t, result.Valid(), "unexpected errors: %v", result)
	})

	t.Run("short description", func(t *testing.T) {
		f := validRecipe()
		f.Description = "Too short"
		result := Recipe(f)
		assert.Equal(t, "Recipe description must be at least 10 characters long", result["description"])
	})

	t.Run("missing image", func(t *testing.T) {
		f := validRecipe()
		f.ImageURL = " "
		result := Recipe(f)
		assert.Equal(t, "Recipe image is required", result["imageUrl"])
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		f := validRecipe()
		f.Difficulty = "Impossible"
		result := Recipe(f)
		assert.Equal(t, "Difficulty must be Easy, Medium, or Hard", result["difficulty"])
	})

	t.Run("empty difficulty allowed", func(t *testing.T) {
		f := validRecipe()
		f.Difficulty = ""
		result := Recipe(f)
		assert.True(t, result.Valid(), "unexpected errors: %v", result)
	})

	t.Run("zero servings", func(t *testing.T) {
		f := validRecipe()
		f.Servings = 0
		result := Recipe(f)
		assert.Equal(t, "Servings must be at least 1", result["servings"])
	})

	t.Run("blank ingredients rejected", func(t *testing.T) {
		f := validRecipe()
		f.Ingredients = []string{"", "  "}
		result := Recipe(f)
		assert.Equal(t, "At least one ingredient is required", result["ingredients"])
	})

	t.Run("short ingredient", func(t *testing.T) {
		f := validRecipe()
		f.Ingredients = []string{"Ab"}
		result := Recipe(f)
		assert.Equal(t, "Each ingredient must be at least 3 characters long", result["ingredients"])
	})

	t.Run("short step", func(t *testing.T) {
		f := validRecipe()
		f.Steps = []string{"Mix"}
		result := Recipe(f)
		assert.Equal(t, "Each instruction step must be at least 5 characters long", result["steps"])
	})
}

func TestReview(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		result := Review(ReviewForm{Rating: 4, Comment: "Loved this recipe."})
		assert.True(t, result.Valid(), "unexpected errors: %v", result)
	})

	t.Run("zero rating", func(t *testing.T) {
		result := Review(ReviewForm{Comment: "Loved this recipe."})
		assert.Equal(t, "Rating must be between 1 and 5", result["rating"])
	})

	t.Run("rating above bound", func(t *testing.T) {
		result := Review(ReviewForm{Rating: 6, Comment: "Loved this recipe."})
		assert.Equal(t, "Rating must be between 1 and 5", result["rating"])
	})

	t.Run("short comment", func(t *testing.T) {
		result := Review(ReviewForm{Rating: 4, Comment: "Ok"})
		assert.Equal(t, "Review must be at least 5 characters long", result["comment"])
	})
}

func TestImage(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		result := Image("image/png", 1024)
		assert.True(t, result.Valid())
	})

	t.Run("too large checked before type", func(t *testing.T) {
		result := Image("application/pdf", MaxImageBytes+1)
		assert.Equal(t, "Image size must be less than 5MB", result["image"])
	})

	t.Run("unsupported type", func(t *testing.T) {
		result := Image("image/tiff", 1024)
		assert.Equal(t, "Invalid image format. Allowed formats: JPEG, PNG, WebP, GIF. You selected: image/tiff", result["image"])
	})
}

func TestFieldHelpers(t *testing.T) {
	assert.Empty(t, Email("user@example.com"))
	assert.Equal(t, "Please enter a valid email address", Email("not-an-email"))

	assert.Empty(t, Password("Password123!"))
	assert.Equal(t, "Password must contain uppercase, lowercase, and numbers", Password("password"))

	assert.Empty(t, DisplayName("Ana"))
	assert.Equal(t, "Display name must be at least 2 characters long", DisplayName("A"))

	assert.Empty(t, Ingredients([]string{"Tomatoes"}))
	assert.Equal(t, "At least one ingredient is required", Ingredients(nil))

	assert.Empty(t, Steps([]string{"Boil the pasta."}))
	assert.Equal(t, "Each instruction step must be at least 5 characters long", Steps([]string{"Mix"}))
}

func TestCleanList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, CleanList([]string{" a ", "", "b", "  "}))
	assert.Empty(t, CleanList(nil))
}
