// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package togglefavorite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/recipehub/server/internal/auth"
	"github.com/recipehub/server/internal/favorites"
	"github.com/recipehub/server/internal/recipedb"
	"github.com/recipehub/server/internal/web"
)

func NewHandler(store *recipedb.Store, timeout time.Duration) *Handler {
	return &Handler{
		store:   store,
		timeout: timeout,
	}
}

type Handler struct {
	store   *recipedb.Store
	timeout time.Duration
}

type Request struct {
	RecipeID string `json:"recipeId"`
}

type Response struct {
	Favorited bool `json:"favorited"`
	Count     int  `json:"count"`
}

// ToggleFavorite flips the caller's favorite on a recipe. The response
// reflects the committed state; if the storage writes fail the toggle is
// rolled back and the pre-toggle state is still what clients should show.
func (h *Handler) ToggleFavorite(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("togglefavorite: sign in to favorite recipes"))
	}

	recipe, err := h.store.GetRecipe(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("recipe not found"))
		}
		return nil, fmt.Errorf("togglefavorite: getting recipe: %w", err)
	}

	toggle := favorites.NewToggle(h.store, recipe.ID, user.UID, recipe.FavoritedBy, recipe.FavoritesCount)
	if h.timeout > 0 {
		toggle.SetTimeout(h.timeout)
	}

	state, err := toggle.Toggle(ctx)
	if err != nil {
		return nil, web.NewError(http.StatusBadGateway, fmt.Errorf("togglefavorite: toggle failed: %w", err))
	}

	return &Response{
		Favorited: state.Favorited,
		Count:     state.Count,
	}, nil
}
