// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/recipehub/server/internal/api"
	"github.com/recipehub/server/internal/auth"
	"github.com/recipehub/server/internal/recipedb"
	"github.com/recipehub/server/internal/web"
)

var errRecipeNotFound = errors.New("recipe not found")

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
	Recipe api.Recipe        `json:"recipe"`
	Rating api.RatingSummary `json:"rating"`

	// Favorited reports whether the caller has favorited the recipe.
	Favorited bool `json:"favorited"`

	// UserReview is the caller's own review of the recipe, if any.
	UserReview *api.Review `json:"userReview,omitempty"`
}

func (h *Handler) GetRecipe(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)

	var recipe *recipedb.Recipe
	var reviews []recipedb.Review

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		if recipe, err = h.store.GetRecipe(gctx, req.RecipeID); err != nil {
			if errors.Is(err, recipedb.ErrNotFound) {
				return web.NewError(http.StatusNotFound, errRecipeNotFound)
			}
			return fmt.Errorf("getrecipe: getting recipe: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		var err error
		if reviews, err = h.store.ReviewsForRecipe(gctx, req.RecipeID); err != nil {
			return fmt.Errorf("getrecipe: getting reviews: %w", err)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	res := &Response{
		Recipe:    api.FromRecipe(recipe),
		Rating:    api.SummarizeReviews(reviews),
		Favorited: user.SignedIn() && slices.Contains(recipe.FavoritedBy, user.UID),
	}
	for i := range reviews {
		if reviews[i].UserID == user.UID && user.SignedIn() {
			review := api.FromReview(&reviews[i])
			res.UserReview = &review
			break
		}
	}
	return res, nil
}
