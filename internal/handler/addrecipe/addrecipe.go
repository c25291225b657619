// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package addrecipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/recipehub/server/internal/auth"
	"github.com/recipehub/server/internal/images"
	"github.com/recipehub/server/internal/recipedb"
	"github.com/recipehub/server/internal/validate"
	"github.com/recipehub/server/internal/web"
)

func NewHandler(store *recipedb.Store, images *images.Writer) *Handler {
	return &Handler{
		store:  store,
		images: images,
	}
}

type Handler struct {
	store  *recipedb.Store
	images *images.Writer
}

type Request struct {
	validate.RecipeForm
}

type Response struct {
	RecipeID string `json:"recipeId"`
}

// AddRecipe validates and stores a new recipe. The author is always the
// authenticated caller regardless of anything in the request, and the
// caller's totalRecipes counter is bumped with a server-side increment.
func (h *Handler) AddRecipe(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("addrecipe: sign in to add recipes"))
	}

	if result := validate.Recipe(req.RecipeForm); !result.Valid() {
		return nil, web.InvalidForm(result)
	}

	id := h.store.NewRecipeID()

	imageURL := strings.TrimSpace(req.ImageURL)
	if strings.HasPrefix(imageURL, "data:") {
		url, result, err := h.images.StoreUpload(ctx, fmt.Sprintf("recipes/%s/main-image", id), imageURL)
		switch {
		case errors.Is(err, images.ErrInvalidDataURL):
			return nil, web.NewError(http.StatusBadRequest, err)
		case err != nil:
			return nil, fmt.Errorf("addrecipe: saving image: %w", err)
		case !result.Valid():
			return nil, web.InvalidForm(result)
		}
		imageURL = url
	}

	now := time.Now()
	recipe := recipedb.Recipe{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Ingredients: validate.CleanList(req.Ingredients),
		Steps:       validate.CleanList(req.Steps),
		ImageURL:    imageURL,
		Category:    req.Category,
		Difficulty:  difficultyOrDefault(req.Difficulty),
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Tags:        validate.CleanList(req.Tags),
		AuthorID:    user.UID,
		CreatedAt:   now,
		UpdatedAt:   now,
		FavoritedBy: []string{},
	}
	if _, err := h.store.CreateRecipe(ctx, &recipe); err != nil {
		return nil, fmt.Errorf("addrecipe: creating recipe: %w", err)
	}

	if err := h.store.AdjustUserRecipes(ctx, user.UID, 1); err != nil {
		// The recipe exists; report the stale counter rather than fail
		// the creation.
		slog.ErrorContext(ctx, "addrecipe: incrementing totalRecipes", "error", err)
	}

	return &Response{RecipeID: id}, nil
}

func difficultyOrDefault(difficulty string) recipedb.Difficulty {
	if difficulty == "" {
		return recipedb.DifficultyMedium
	}
	return recipedb.Difficulty(difficulty)
}
