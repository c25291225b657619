// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deletereview

import (
	"context"
	"errors"
	"fmt"
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
	ReviewID string `json:"reviewId"`
}

type Response struct{}

func (h *Handler) DeleteReview(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("deletereview: sign in to delete reviews"))
	}

	review, err := h.store.GetReview(ctx, req.ReviewID)
	if err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("review not found"))
		}
		return nil, fmt.Errorf("deletereview: getting review: %w", err)
	}
	if review.UserID != user.UID {
		return nil, web.NewError(http.StatusForbidden, errors.New("deletereview: only the reviewer can delete a review"))
	}

	if err := h.store.DeleteReview(ctx, req.ReviewID); err != nil {
		return nil, fmt.Errorf("deletereview: deleting review: %w", err)
	}
	return &Response{}, nil
}
