// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import "time"

// Collection names in Firestore. The singular recipe/review names are
// historical and must not change without a data migration.
const (
	CollectionRecipes = "recipe"
	CollectionReviews = "review"
	CollectionUsers   = "users"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Recipe represents a recipe stored in Firestore.
type Recipe struct {
	// ID is the unique identifier of the recipe, mirrored from the doc ID.
	ID string `firestore:"id"`

	// Title is the title of the recipe.
	Title string `firestore:"title"`

	// Description is the description of the recipe.
	Description string `firestore:"description"`

	// Ingredients are the ingredients of the recipe as free-form text.
	Ingredients []string `firestore:"ingredients"`

	// Steps are the instruction steps to prepare the recipe.
	Steps []string `firestore:"steps"`

	// ImageURL is the URL for the main image of the recipe.
	ImageURL string `firestore:"imageUrl"`

	// Category is the category of the recipe, e.g. "Dinner".
	Category string `firestore:"category"`

	// Difficulty is the difficulty of the recipe.
	Difficulty Difficulty `firestore:"difficulty"`

	// PrepTime is the preparation time in minutes.
	PrepTime int `firestore:"prepTime"`

	// CookTime is the cooking time in minutes.
	CookTime int `firestore:"cookTime"`

	// Servings is the number of servings the recipe makes.
	Servings int `firestore:"servings"`

	// Tags are free-form tags for search and filtering.
	Tags []string `firestore:"tags"`

	// AuthorID is the UID of the user who created the recipe. It is
	// always taken from the authenticated session, never from a request.
	AuthorID string `firestore:"authorId"`

	// CreatedAt is the time the recipe was created.
	CreatedAt time.Time `firestore:"createdAt"`

	// UpdatedAt is the time the recipe was last updated.
	UpdatedAt time.Time `firestore:"updatedAt"`

	// FavoritesCount is the denormalized count of users that favorited
	// the recipe. Kept consistent with FavoritedBy by atomic updates.
	FavoritesCount int `firestore:"favoritesCount"`

	// SharesCount is the denormalized count of shares of the recipe.
	SharesCount int `firestore:"sharesCount"`

	// FavoritedBy are the UIDs of users that favorited the recipe.
	FavoritedBy []string `firestore:"favoritedBy"`
}

// Review represents a star rating with comment left on a recipe.
// A user leaves at most one review per recipe.
type Review struct {
	// ID is the unique identifier of the review, mirrored from the doc ID.
	ID string `firestore:"id"`

	// RecipeID is the ID of the reviewed recipe.
	RecipeID string `firestore:"recipeId"`

	// UserID is the UID of the reviewing user.
	UserID string `firestore:"userId"`

	// UserName is the display name of the reviewing user at review time.
	UserName string `firestore:"userName"`

	// UserPhoto is the photo URL of the reviewing user, if any.
	UserPhoto string `firestore:"userPhoto,omitempty"`

	// Rating is the star rating, 1 to 5.
	Rating int `firestore:"rating"`

	// Comment is the review text.
	Comment string `firestore:"comment"`

	// CreatedAt is the time the review was created.
	CreatedAt time.Time `firestore:"createdAt"`

	// UpdatedAt is the time the review was last updated.
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// User represents a user profile stored in Firestore, keyed by the
// Firebase UID.
type User struct {
	// UID is the Firebase UID of the user.
	UID string `firestore:"uid"`

	// DisplayName is the public display name of the user.
	DisplayName string `firestore:"displayName"`

	// Email is the email address of the user.
	Email string `firestore:"email"`

	// PhotoURL is the URL of the user's profile photo, if any.
	PhotoURL string `firestore:"photoURL"`

	// Bio is a short free-form description of the user.
	Bio string `firestore:"bio"`

	// CreatedAt is the time the account was created.
	CreatedAt time.Time `firestore:"createdAt"`

	// UpdatedAt is the time the profile was last updated.
	UpdatedAt time.Time `firestore:"updatedAt"`

	// TotalRecipes is the denormalized count of recipes the user authored.
	TotalRecipes int `firestore:"totalRecipes"`

	// TotalFavorites is the denormalized count of recipes the user favorited.
	TotalFavorites int `firestore:"totalFavorites"`
}
