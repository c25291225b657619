// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package sharerecipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/recipehub/server/internal/recipedb"
	"github.com/recipehub/server/internal/web"
)

func NewHandler(store *recipedb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *recipedb.Store
}

type Request struct {
	RecipeID string `json:"recipeId"`
}

type Response struct {
	SharesCount int `json:"sharesCount"`
}

// ShareRecipe records a share of a recipe. Shares are anonymous so no
// session is required.
func (h *Handler) ShareRecipe(ctx context.Context, req *Request) (*Response, error) {
	recipe, err := h.store.GetRecipe(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("recipe not found"))
		}
		return nil, fmt.Errorf("sharerecipe: getting recipe: %w", err)
	}

	if err := h.store.AddShare(ctx, recipe.ID); err != nil {
		return nil, fmt.Errorf("sharerecipe: recording share: %w", err)
	}

	return &Response{SharesCount: recipe.SharesCount + 1}, nil
}
