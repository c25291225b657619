// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updateprofile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/recipehub/server/internal/api"
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
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`

	// PhotoURL may be a data URL for a new upload or an existing URL to
	// keep.
	PhotoURL string `json:"photoURL"`
}

type Response struct {
	Profile api.Profile `json:"profile"`
}

func (h *Handler) UpdateProfile(ctx context.Context, req *Request) (*Response, error) {
	user := auth.UserFromContext(ctx)
	if !user.SignedIn() {
		return nil, web.NewError(http.StatusUnauthorized, errors.New("updateprofile: sign in to edit your profile"))
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if msg := validate.DisplayName(displayName); msg != "" {
		return nil, web.InvalidForm(validate.Result{"displayName": msg})
	}

	photoURL := strings.TrimSpace(req.PhotoURL)
	if strings.HasPrefix(photoURL, "data:") {
		url, result, err := h.images.StoreUpload(ctx, fmt.Sprintf("users/%s/photo", user.UID), photoURL)
		switch {
		case errors.Is(err, images.ErrInvalidDataURL):
			return nil, web.NewError(http.StatusBadRequest, err)
		case err != nil:
			return nil, fmt.Errorf("updateprofile: saving photo: %w", err)
		case !result.Valid():
			return nil, web.InvalidForm(result)
		}
		photoURL = url
	}

	if err := h.store.UpdateUserProfile(ctx, user.UID, displayName, strings.TrimSpace(req.Bio), photoURL); err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("profile not found"))
		}
		return nil, fmt.Errorf("updateprofile: updating profile: %w", err)
	}

	updated, err := h.store.GetUser(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("updateprofile: reloading profile: %w", err)
	}
	return &Response{Profile: api.FromUser(updated)}, nil
}
