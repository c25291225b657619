// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updaterecipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

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
	RecipeID string `json:"recipeId"`
	validate.RecipeForm
}

type Response struct{}

// UpdateRecipe overwrites the author-editable fields of an owned
// recipe. The author, creation time and engagement counters are never
// taken from the request; the author is re-asserted from the session.
func (h *Handler) UpdateRecipe(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("updaterecipe: sign in to edit recipes"))
	}

	recipe, err := h.store.GetRecipe(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("recipe not found"))
		}
		return nil, fmt.Errorf("updaterecipe: getting recipe: %w", err)
	}
	if recipe.AuthorID != user.UID {
		return nil, web.NewError(http.StatusForbidden, errors.New("updaterecipe: only the author can edit a recipe"))
	}

	if result := validate.Recipe(req.RecipeForm); !result.Valid() {
		return nil, web.InvalidForm(result)
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if strings.HasPrefix(imageURL, "data:") {
		url, result, err := h.images.StoreUpload(ctx, fmt.Sprintf("recipes/%s/main-image", req.RecipeID), imageURL)
		switch {
		case errors.Is(err, images.ErrInvalidDataURL):
			return nil, web.NewError(http.StatusBadRequest, err)
		case err != nil:
			return nil, fmt.Errorf("updaterecipe: saving image: %w", err)
		case !result.Valid():
			return nil, web.InvalidForm(result)
		}
		imageURL = url
	}

	updated := recipedb.Recipe{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Ingredients: validate.CleanList(req.Ingredients),
		Steps:       validate.CleanList(req.Steps),
		ImageURL:    imageURL,
		Category:    req.Category,
		Difficulty:  recipe.Difficulty,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Tags:        validate.CleanList(req.Tags),
	}
	if req.Difficulty != "" {
		updated.Difficulty = recipedb.Difficulty(req.Difficulty)
	}

	if err := h.store.UpdateRecipeContent(ctx, req.RecipeID, &updated); err != nil {
		return nil, fmt.Errorf("updaterecipe: updating recipe: %w", err)
	}
	return &Response{}, nil
}
