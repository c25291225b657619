// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package api holds the JSON shapes shared by the endpoint handlers and
// their conversions from the Firestore models.
package api

import (
	"sort"
	"time"

	"github.com/recipehub/server/internal/recipedb"
)

// Recipe is a recipe as served to clients.
type Recipe struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Ingredients    []string  `json:"ingredients"`
	Steps          []string  `json:"steps"`
	ImageURL       string    `json:"imageUrl"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty"`
	PrepTime       int       `json:"prepTime"`
	CookTime       int       `json:"cookTime"`
	Servings       int       `json:"servings"`
	Tags           []string  `json:"tags"`
	AuthorID       string    `json:"authorId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	FavoritesCount int       `json:"favoritesCount"`
	SharesCount    int       `json:"sharesCount"`
}

// Review is a review as served to clients.
type Review struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	UserPhoto string    `json:"userPhoto,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingSummary aggregates the reviews of a recipe.
type RatingSummary struct {
	// Average is the mean star rating, 0 when there are no reviews.
	Average float64 `json:"average"`

	// TotalReviews is the number of reviews.
	TotalReviews int `json:"totalReviews"`

	// Distribution counts reviews per star value, 1 through 5.
	Distribution map[int]int `json:"distribution"`
}

// Profile is a user profile as served to clients.
type Profile struct {
	UID            string    `json:"uid"`
	DisplayName    string    `json:"displayName"`
	Email          string    `json:"email"`
	PhotoURL       string    `json:"photoURL,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	TotalRecipes   int       `json:"totalRecipes"`
	TotalFavorites int       `json:"totalFavorites"`
}

// FromRecipe converts a stored recipe. The favoritedBy membership set
// is not exposed to clients.
func FromRecipe(recipe *recipedb.Recipe) Recipe {
	return Recipe{
		ID:             recipe.ID,
		Title:          recipe.Title,
		Description:    recipe.Description,
		Ingredients:    recipe.Ingredients,
		Steps:          recipe.Steps,
		ImageURL:       recipe.ImageURL,
		Category:       recipe.Category,
		Difficulty:     string(recipe.Difficulty),
		PrepTime:       recipe.PrepTime,
		CookTime:       recipe.CookTime,
		Servings:       recipe.Servings,
		Tags:           recipe.Tags,
		AuthorID:       recipe.AuthorID,
		CreatedAt:      recipe.CreatedAt,
		UpdatedAt:      recipe.UpdatedAt,
		FavoritesCount: recipe.FavoritesCount,
		SharesCount:    recipe.SharesCount,
	}
}

// FromRecipes converts a list of stored recipes.
func FromRecipes(recipes []recipedb.Recipe) []Recipe {
	result := make([]Recipe, len(recipes))
	for i := range recipes {
		result[i] = FromRecipe(&recipes[i])
	}
	return result
}

// FromReview converts a stored review.
func FromReview(review *recipedb.Review) Review {
	return Review{
		ID:        review.ID,
		RecipeID:  review.RecipeID,
		UserID:    review.UserID,
		UserName:  review.UserName,
		UserPhoto: review.UserPhoto,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// FromUser converts a stored user profile.
func FromUser(user *recipedb.User) Profile {
	return Profile{
		UID:            user.UID,
		DisplayName:    user.DisplayName,
		Email:          user.Email,
		PhotoURL:       user.PhotoURL,
		Bio:            user.Bio,
		CreatedAt:      user.CreatedAt,
		TotalRecipes:   user.TotalRecipes,
		TotalFavorites: user.TotalFavorites,
	}
}

// SummarizeReviews computes the rating summary over all reviews of a
// recipe.
func SummarizeReviews(reviews []recipedb.Review) RatingSummary {
	summary := RatingSummary{
		TotalReviews: len(reviews),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
		if review.Rating >= 1 && review.Rating <= 5 {
			summary.Distribution[review.Rating]++
		}
	}
	summary.Average = float64(total) / float64(len(reviews))
	return summary
}

// SortReviewsNewestFirst orders reviews by creation time descending,
// ties broken by ID for deterministic output.
func SortReviewsNewestFirst(reviews []recipedb.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID < reviews[j].ID
	})
}
