// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("recipedb: not found")

func NewStore(client *firestore.Client) *Store {
	return &Store{
		client: client,
	}
}

// Store provides typed access to the RecipeHub Firestore collections.
// Counter mutations use Firestore server-side increments so they are
// safe under concurrent writers.
type Store struct {
	client *firestore.Client
}

func (s *Store) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	doc, err := s.client.Collection(CollectionRecipes).Doc(id).Get(ctx)
	if err != nil {
		if doc != nil && !doc.Exists() {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recipedb: getting recipe: %w", err)
	}

	var recipe Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling recipe: %w", err)
	}
	recipe.ID = doc.Ref.ID
	return &recipe, nil
}

// NewRecipeID reserves an ID for a recipe that has not been stored
// yet, so dependent objects such as images can be named before the
// document is created.
func (s *Store) NewRecipeID() string {
	return s.client.Collection(CollectionRecipes).NewDoc().ID
}

// CreateRecipe stores a new recipe and returns its assigned ID. A
// pre-reserved recipe.ID is honored; otherwise one is assigned.
func (s *Store) CreateRecipe(ctx context.Context, recipe *Recipe) (string, error) {
	var doc *firestore.DocumentRef
	if recipe.ID != "" {
		doc = s.client.Collection(CollectionRecipes).Doc(recipe.ID)
	} else {
		doc = s.client.Collection(CollectionRecipes).NewDoc()
		recipe.ID = doc.ID
	}
	if _, err := doc.Create(ctx, recipe); err != nil {
		return "", fmt.Errorf("recipedb: creating recipe: %w", err)
	}
	return doc.ID, nil
}

// UpdateRecipeContent overwrites the author-editable fields of a recipe.
// The author, creation time and engagement counters are never written here.
func (s *Store) UpdateRecipeContent(ctx context.Context, id string, recipe *Recipe) error {
	updates := []firestore.Update{
		{Path: "title", Value: recipe.Title},
		{Path: "description", Value: recipe.Description},
		{Path: "ingredients", Value: recipe.Ingredients},
		{Path: "steps", Value: recipe.Steps},
		{Path: "imageUrl", Value: recipe.ImageURL},
		{Path: "category", Value: recipe.Category},
		{Path: "difficulty", Value: recipe.Difficulty},
		{Path: "prepTime", Value: recipe.PrepTime},
		{Path: "cookTime", Value: recipe.CookTime},
		{Path: "servings", Value: recipe.Servings},
		{Path: "tags", Value: recipe.Tags},
		{Path: "updatedAt", Value: time.Now()},
	}
	if _, err := s.client.Collection(CollectionRecipes).Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("recipedb: updating recipe: %w", err)
	}
	return nil
}

func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	if _, err := s.client.Collection(CollectionRecipes).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("recipedb: deleting recipe: %w", err)
	}
	return nil
}

// ListRecipes returns all recipes, newest first.
func (s *Store) ListRecipes(ctx context.Context) ([]Recipe, error) {
	docs, err := s.client.Collection(CollectionRecipes).
		OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("recipedb: listing recipes: %w", err)
	}
	return recipesFromDocs(docs)
}

// RecipesByAuthor returns the recipes created by the given user.
func (s *Store) RecipesByAuthor(ctx context.Context, uid string) ([]Recipe, error) {
	docs, err := s.client.Collection(CollectionRecipes).
		Where("authorId", "==", uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("recipedb: listing recipes by author: %w", err)
	}
	return recipesFromDocs(docs)
}

// RecipesFavoritedBy returns the recipes the given user has favorited.
func (s *Store) RecipesFavoritedBy(ctx context.Context, uid string) ([]Recipe, error) {
	docs, err := s.client.Collection(CollectionRecipes).
		Where("favoritedBy", "array-contains", uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("recipedb: listing favorited recipes: %w", err)
	}
	return recipesFromDocs(docs)
}

func recipesFromDocs(docs []*firestore.DocumentSnapshot) ([]Recipe, error) {
	recipes := make([]Recipe, len(docs))
	for i, doc := range docs {
		if err := doc.DataTo(&recipes[i]); err != nil {
			return nil, fmt.Errorf("recipedb: unmarshalling recipe: %w", err)
		}
		recipes[i].ID = doc.Ref.ID
	}
	return recipes, nil
}

// AddFavorite adds the user to the recipe's favoritedBy set and bumps
// favoritesCount by one in a single server-side update.
func (s *Store) AddFavorite(ctx context.Context, recipeID string, uid string) error {
	_, err := s.client.Collection(CollectionRecipes).Doc(recipeID).Update(ctx, []firestore.Update{
		{Path: "favoritedBy", Value: firestore.ArrayUnion(uid)},
		{Path: "favoritesCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return fmt.Errorf("recipedb: adding favorite: %w", err)
	}
	return nil
}

// RemoveFavorite removes the user from the recipe's favoritedBy set and
// drops favoritesCount by one in a single server-side update.
func (s *Store) RemoveFavorite(ctx context.Context, recipeID string, uid string) error {
	_, err := s.client.Collection(CollectionRecipes).Doc(recipeID).Update(ctx, []firestore.Update{
		{Path: "favoritedBy", Value: firestore.ArrayRemove(uid)},
		{Path: "favoritesCount", Value: firestore.Increment(-1)},
	})
	if err != nil {
		return fmt.Errorf("recipedb: removing favorite: %w", err)
	}
	return nil
}

// AdjustUserFavorites moves the user's denormalized totalFavorites
// counter by delta.
func (s *Store) AdjustUserFavorites(ctx context.Context, uid string, delta int) error {
	_, err := s.client.Collection(CollectionUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "totalFavorites", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return fmt.Errorf("recipedb: adjusting user favorites: %w", err)
	}
	return nil
}

// AdjustUserRecipes moves the user's denormalized totalRecipes counter
// by delta.
func (s *Store) AdjustUserRecipes(ctx context.Context, uid string, delta int) error {
	_, err := s.client.Collection(CollectionUsers).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "totalRecipes", Value: firestore.Increment(delta)},
	})
	if err != nil {
		return fmt.Errorf("recipedb: adjusting user recipes: %w", err)
	}
	return nil
}

// AddShare bumps the recipe's share counter by one.
func (s *Store) AddShare(ctx context.Context, recipeID string) error {
	_, err := s.client.Collection(CollectionRecipes).Doc(recipeID).Update(ctx, []firestore.Update{
		{Path: "sharesCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return fmt.Errorf("recipedb: adding share: %w", err)
	}
	return nil
}

func (s *Store) GetReview(ctx context.Context, id string) (*Review, error) {
	doc, err := s.client.Collection(CollectionReviews).Doc(id).Get(ctx)
	if err != nil {
		if doc != nil && !doc.Exists() {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recipedb: getting review: %w", err)
	}

	var review Review
	if err := doc.DataTo(&review); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling review: %w", err)
	}
	review.ID = doc.Ref.ID
	return &review, nil
}

// CreateReview stores a new review and returns its assigned ID.
func (s *Store) CreateReview(ctx context.Context, review *Review) (string, error) {
	doc := s.client.Collection(CollectionReviews).NewDoc()
	review.ID = doc.ID
	if _, err := doc.Create(ctx, review); err != nil {
		return "", fmt.Errorf("recipedb: creating review: %w", err)
	}
	return doc.ID, nil
}

// UpdateReview overwrites the rating and comment of a review.
func (s *Store) UpdateReview(ctx context.Context, id string, rating int, comment string) error {
	_, err := s.client.Collection(CollectionReviews).Doc(id).Update(ctx, []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "comment", Value: comment},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return fmt.Errorf("recipedb: updating review: %w", err)
	}
	return nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) error {
	if _, err := s.client.Collection(CollectionReviews).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("recipedb: deleting review: %w", err)
	}
	return nil
}

// ReviewsForRecipe returns all reviews for the given recipe.
func (s *Store) ReviewsForRecipe(ctx context.Context, recipeID string) ([]Review, error) {
	docs, err := s.client.Collection(CollectionReviews).
		Where("recipeId", "==", recipeID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("recipedb: listing reviews: %w", err)
	}

	reviews := make([]Review, len(docs))
	for i, doc := range docs {
		if err := doc.DataTo(&reviews[i]); err != nil {
			return nil, fmt.Errorf("recipedb: unmarshalling review: %w", err)
		}
		reviews[i].ID = doc.Ref.ID
	}
	return reviews, nil
}

// UserReview returns the review the user left on the recipe, or
// ErrNotFound if there is none.
func (s *Store) UserReview(ctx context.Context, recipeID string, uid string) (*Review, error) {
	doc, err := s.client.Collection(CollectionReviews).
		Where("recipeId", "==", recipeID).
		Where("userId", "==", uid).
		Limit(1).Documents(ctx).Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recipedb: getting user review: %w", err)
	}

	var review Review
	if err := doc.DataTo(&review); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling review: %w", err)
	}
	review.ID = doc.Ref.ID
	return &review, nil
}

func (s *Store) GetUser(ctx context.Context, uid string) (*User, error) {
	doc, err := s.client.Collection(CollectionUsers).Doc(uid).Get(ctx)
	if err != nil {
		if doc != nil && !doc.Exists() {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recipedb: getting user: %w", err)
	}

	var user User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("recipedb: unmarshalling user: %w", err)
	}
	return &user, nil
}

// CreateUser stores the profile document for a newly signed-up user.
func (s *Store) CreateUser(ctx context.Context, user *User) error {
	if _, err := s.client.Collection(CollectionUsers).Doc(user.UID).Create(ctx, user); err != nil {
		return fmt.Errorf("recipedb: creating user: %w", err)
	}
	return nil
}

// UpdateUserProfile overwrites the user-editable profile fields.
func (s *Store) UpdateUserProfile(ctx context.Context, uid string, displayName string, bio string, photoURL string) error {
	updates := []firestore.Update{
		{Path: "displayName", Value: displayName},
		{Path: "bio", Value: bio},
		{Path: "updatedAt", Value: time.Now()},
	}
	if photoURL != "" {
		updates = append(updates, firestore.Update{Path: "photoURL", Value: photoURL})
	}
	if _, err := s.client.Collection(CollectionUsers).Doc(uid).Update(ctx, updates); err != nil {
		return fmt.Errorf("recipedb: updating user profile: %w", err)
	}
	return nil
}
