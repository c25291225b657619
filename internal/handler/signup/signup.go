// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/recipehub/server/internal/recipedb"
	"github.com/recipehub/server/internal/validate"
	"github.com/recipehub/server/internal/web"
)

func NewHandler(fbAuth *fbauth.Client, store *recipedb.Store) *Handler {
	return &Handler{
		fbAuth: fbAuth,
		store:  store,
	}
}

type Handler struct {
	fbAuth *fbauth.Client
	store  *recipedb.Store
}

type Request struct {
	validate.SignupForm
}

type Response struct {
	UID string `json:"uid"`
}

// Signup creates the Firebase account and the matching profile document
// with zeroed counters.
func (h *Handler) Signup(ctx context.Context, req *Request) (*Response, error) {
	if result := validate.Signup(req.SignupForm); !result.Valid() {
		return nil, web.InvalidForm(result)
	}

	displayName := strings.TrimSpace(req.DisplayName)
	email := strings.TrimSpace(req.Email)

	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(req.Password).
		DisplayName(displayName)
	record, err := h.fbAuth.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return nil, web.NewError(http.StatusConflict, fmt.Errorf("signup: email already registered"))
		}
		return nil, fmt.Errorf("signup: creating firebase user: %w", err)
	}

	now := time.Now()
	user := recipedb.User{
		UID:         record.UID,
		DisplayName: displayName,
		Email:       email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.store.CreateUser(ctx, &user); err != nil {
		return nil, fmt.Errorf("signup: creating user profile: %w", err)
	}

	return &Response{UID: record.UID}, nil
}
