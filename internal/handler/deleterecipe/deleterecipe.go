// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deleterecipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/recipehub/server/internal/auth"
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

type Response struct{}

// DeleteRecipe removes an owned recipe and drops the author's
// totalRecipes counter.
func (h *Handler) DeleteRecipe(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("deleterecipe: sign in to delete recipes"))
	}

	recipe, err := h.store.GetRecipe(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("recipe not found"))
		}
		return nil, fmt.Errorf("deleterecipe: getting recipe: %w", err)
	}
	if recipe.AuthorID != user.UID {
		return nil, web.NewError(http.StatusForbidden, errors.New("deleterecipe: only the author can delete a recipe"))
	}

	if err := h.store.DeleteRecipe(ctx, req.RecipeID); err != nil {
		return nil, fmt.Errorf("deleterecipe: deleting recipe: %w", err)
	}

	if err := h.store.AdjustUserRecipes(ctx, user.UID, -1); err != nil {
		slog.ErrorContext(ctx, "deleterecipe: decrementing totalRecipes", "error", err)
	}
	return &Response{}, nil
}
