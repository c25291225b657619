// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package addreview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/recipehub/server/internal/api"
	"github.com/recipehub/server/internal/auth"
	"github.com/recipehub/server/internal/recipedb"
	"github.com/recipehub/server/internal/validate"
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
	validate.ReviewForm
}

type Response struct {
	Review api.Review `json:"review"`
}

// AddReview posts the caller's review of a recipe. A user gets one
// review per recipe; posting again is rejected rather than overwriting.
func (h *Handler) AddReview(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("addreview: sign in to review recipes"))
	}

	if result := validate.Review(req.ReviewForm); !result.Valid() {
		return nil, web.InvalidForm(result)
	}

	if _, err := h.store.GetRecipe(ctx, req.RecipeID); err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("recipe not found"))
		}
		return nil, fmt.Errorf("addreview: getting recipe: %w", err)
	}

	if _, err := h.store.UserReview(ctx, req.RecipeID, user.UID); err == nil {
		return nil, web.NewError(http.StatusConflict, errors.New("addreview: you already reviewed this recipe"))
	} else if !errors.Is(err, recipedb.ErrNotFound) {
		return nil, fmt.Errorf("addreview: checking existing review: %w", err)
	}

	now := time.Now()
	review := recipedb.Review{
		RecipeID:  req.RecipeID,
		UserID:    user.UID,
		UserName:  user.DisplayName,
		UserPhoto: user.PhotoURL,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := h.store.CreateReview(ctx, &review); err != nil {
		return nil, fmt.Errorf("addreview: creating review: %w", err)
	}

	return &Response{Review: api.FromReview(&review)}, nil
}
