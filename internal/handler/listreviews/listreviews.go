// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listreviews

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/recipehub/server/internal/api"
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

type Response struct {
	Reviews []api.Review      `json:"reviews"`
	Rating  api.RatingSummary `json:"rating"`

	// UserReview is the caller's own review, pulled out of Reviews so
	// clients can render the edit form without searching.
	UserReview *api.Review `json:"userReview,omitempty"`
}

// ListReviews returns a recipe's reviews newest first along with the
// rating summary.
func (h *Handler) ListReviews(ctx context.Context, req *Request) (*Response, error) {
	if _, err := h.store.GetRecipe(ctx, req.RecipeID); err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("recipe not found"))
		}
		return nil, fmt.Errorf("listreviews: getting recipe: %w", err)
	}

	reviews, err := h.store.ReviewsForRecipe(ctx, req.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("listreviews: listing reviews: %w", err)
	}

	api.SortReviewsNewestFirst(reviews)

	res := &Response{
		Rating: api.SummarizeReviews(reviews),
	}

	apiReviews := make([]api.Review, 0, len(reviews))
	user := auth.UserFromContext(ctx)
	for i := range reviews {
		r := api.FromReview(&reviews[i])
		if user.SignedIn() && reviews[i].UserID == user.UID {
			res.UserReview = &r
			continue
		}
		apiReviews = append(apiReviews, r)
	}
	res.Reviews = apiReviews

	return res, nil
}
