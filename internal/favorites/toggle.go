// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package favorites implements the optimistic favorite toggle for a
// recipe. Local state flips before the remote writes resolve and is
// restored to the exact pre-toggle snapshot if any write fails.
package favorites

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds the remote updates of a single toggle so a
// stuck call cannot leave the toggle pending forever.
const DefaultTimeout = 10 * time.Second

// Store is the remote side of the toggle. Implementations must apply
// the set membership and counter changes with server-side atomic
// semantics, not client read-modify-write.
type Store interface {
	// AddFavorite adds the user to the recipe's favorite set and
	// increments its favorite counter by one.
	AddFavorite(ctx context.Context, recipeID string, uid string) error
	// RemoveFavorite removes the user from the recipe's favorite set and
	// decrements its favorite counter by one.
	RemoveFavorite(ctx context.Context, recipeID string, uid string) error
	// AdjustUserFavorites moves the user's total favorite counter by delta.
	AdjustUserFavorites(ctx context.Context, uid string, delta int) error
}

// State is the local mirror of the favorite relationship.
type State struct {
	// Favorited reports whether the user currently favorites the recipe.
	Favorited bool `json:"favorited"`

	// Count is the local mirror of the recipe's favorite counter.
	Count int `json:"count"`
}

// Status is the lifecycle phase of a toggle.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusCommitted
	StatusRolledBack
)

// NewToggle creates a toggle for the user and recipe, seeded from the
// recipe's current favorite set and counter. An empty user ID makes
// every Toggle call a no-op; callers are expected to hide the control
// from anonymous users.
func NewToggle(store Store, recipeID string, uid string, favoritedBy []string, count int) *Toggle {
	return &Toggle{
		store:    store,
		recipeID: recipeID,
		uid:      uid,
		timeout:  DefaultTimeout,
		state: State{
			Favorited: uid != "" && slices.Contains(favoritedBy, uid),
			Count:     count,
		},
	}
}

type Toggle struct {
	store    Store
	recipeID string
	uid      string
	timeout  time.Duration

	mu      sync.Mutex
	state   State
	status  Status
	pending bool
}

// SetTimeout overrides the remote update timeout.
func (t *Toggle) SetTimeout(timeout time.Duration) {
	t.timeout = timeout
}

// State returns the current local state.
func (t *Toggle) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Status returns the lifecycle phase of the last toggle.
func (t *Toggle) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Toggle flips the favorite relationship. The local state is updated
// optimistically, then the recipe and user documents are updated
// concurrently. If either update fails the local state is restored to
// the exact pre-toggle snapshot and the error returned; the documents
// may then disagree with each other until the next successful toggle,
// since the two updates are not a cross-document transaction.
//
// A call while a previous toggle is still in flight is ignored and
// returns the in-flight optimistic state.
func (t *Toggle) Toggle(ctx context.Context) (State, error) {
	t.mu.Lock()
	if t.uid == "" || t.recipeID == "" || t.pending {
		state := t.state
		t.mu.Unlock()
		return state, nil
	}
	t.pending = true
	t.status = StatusPending
	snapshot := t.state

	adding := !t.state.Favorited
	t.state.Favorited = adding
	if adding {
		t.state.Count++
	} else {
		t.state.Count = max(0, t.state.Count-1)
	}
	next := t.state
	t.mu.Unlock()

	delta := 1
	if !adding {
		delta = -1
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		if adding {
			return t.store.AddFavorite(ctx, t.recipeID, t.uid)
		}
		return t.store.RemoveFavorite(ctx, t.recipeID, t.uid)
	})
	grp.Go(func() error {
		return t.store.AdjustUserFavorites(ctx, t.uid, delta)
	})

	if err := grp.Wait(); err != nil {
		t.mu.Lock()
		// Restore the snapshot rather than inverting the optimistic
		// change so repeated rapid toggles cannot compound drift.
		t.state = snapshot
		t.status = StatusRolledBack
		t.pending = false
		t.mu.Unlock()
		return snapshot, fmt.Errorf("favorites: toggling favorite: %w", err)
	}

	t.mu.Lock()
	t.status = StatusCommitted
	t.pending = false
	t.mu.Unlock()
	return next, nil
}
