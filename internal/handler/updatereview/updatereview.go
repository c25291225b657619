// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updatereview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

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
	ReviewID string `json:"reviewId"`
	validate.ReviewForm
}

type Response struct {
	Review api.Review `json:"review"`
}

func (h *Handler) UpdateReview(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("updatereview: sign in to edit reviews"))
	}

	review, err := h.store.GetReview(ctx, req.ReviewID)
	if err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("review not found"))
		}
		return nil, fmt.Errorf("updatereview: getting review: %w", err)
	}
	if review.UserID != user.UID {
		return nil, web.NewError(http.StatusForbidden, errors.New("updatereview: only the reviewer can edit a review"))
	}

	if result := validate.Review(req.ReviewForm); !result.Valid() {
		return nil, web.InvalidForm(result)
	}

	review.Rating = req.Rating
	review.Comment = strings.TrimSpace(req.Comment)
	if err := h.store.UpdateReview(ctx, review.ID, review.Rating, review.Comment); err != nil {
		return nil, fmt.Errorf("updatereview: updating review: %w", err)
	}

	return &Response{Review: api.FromReview(review)}, nil
}
