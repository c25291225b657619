// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu sync.Mutex

	favorites map[string]bool
	userDelta int

	addErr    error
	removeErr error
	userErr   error

	// release, when set, blocks recipe updates until closed.
	release chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{favorites: map[string]bool{}}
}

func (s *fakeStore) AddFavorite(ctx context.Context, recipeID string, uid string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	s.favorites[recipeID+"/"+uid] = true
	return nil
}

func (s *fakeStore) RemoveFavorite(ctx context.Context, recipeID string, uid string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.favorites, recipeID+"/"+uid)
	return nil
}

func (s *fakeStore) wait(ctx context.Context) error {
	if s.release == nil {
		return nil
	}
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *fakeStore) AdjustUserFavorites(_ context.Context, _ string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userErr != nil {
		return s.userErr
	}
	s.userDelta += delta
	return nil
}

func TestToggle_RoundTrip(t *testing.T) {
	store := newFakeStore()
	toggle := NewToggle(store, "r1", "u1", nil, 5)

	state, err := toggle.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, State{Favorited: true, Count: 6}, state)
	assert.Equal(t, StatusCommitted, toggle.Status())
	assert.True(t, store.favorites["r1/u1"])
	assert.Equal(t, 1, store.userDelta)

	state, err = toggle.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, State{Favorited: false, Count: 5}, state)
	assert.False(t, store.favorites["r1/u1"])
	assert.Equal(t, 0, store.userDelta)
}

func TestToggle_SeededFromFavoriteSet(t *testing.T) {
	store := newFakeStore()
	toggle := NewToggle(store, "r1", "u1", []string{"u2", "u1"}, 2)

	assert.Equal(t, State{Favorited: true, Count: 2}, toggle.State())

	state, err := toggle.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, State{Favorited: false, Count: 1}, state)
}

func TestToggle_RollbackRestoresSnapshot(t *testing.T) {
	store := newFakeStore()
	store.addErr = errors.New("unavailable")
	toggle := NewToggle(store, "r1", "u1", nil, 5)

	state, err := toggle.Toggle(t.Context())
	require.Error(t, err)
	assert.Equal(t, State{Favorited: false, Count: 5}, state)
	assert.Equal(t, State{Favorited: false, Count: 5}, toggle.State())
	assert.Equal(t, StatusRolledBack, toggle.Status())
}

func TestToggle_PartialFailureRollsBack(t *testing.T) {
	store := newFakeStore()
	store.userErr = errors.New("unavailable")
	toggle := NewToggle(store, "r1", "u1", nil, 5)

	state, err := toggle.Toggle(t.Context())
	require.Error(t, err)
	assert.Equal(t, State{Favorited: false, Count: 5}, state)
	assert.Equal(t, StatusRolledBack, toggle.Status())
}

func TestToggle_CountClampedAtZero(t *testing.T) {
	store := newFakeStore()
	// A stale counter of 0 with the user already in the set.
	toggle := NewToggle(store, "r1", "u1", []string{"u1"}, 0)

	state, err := toggle.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, State{Favorited: false, Count: 0}, state)
}

func TestToggle_AnonymousIsNoOp(t *testing.T) {
	store := newFakeStore()
	toggle := NewToggle(store, "r1", "", []string{"u1"}, 3)

	state, err := toggle.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, State{Favorited: false, Count: 3}, state)
	assert.Equal(t, StatusIdle, toggle.Status())
	assert.Empty(t, store.favorites)
}

func TestToggle_IgnoresReentryWhilePending(t *testing.T) {
	store := newFakeStore()
	store.release = make(chan struct{})
	toggle := NewToggle(store, "r1", "u1", nil, 5)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := toggle.Toggle(t.Context())
		assert.NoError(t, err)
	}()

	// Wait for the first toggle to flip local state and block on the store.
	require.Eventually(t, func() bool {
		return toggle.State().Favorited
	}, time.Second, time.Millisecond)

	state, err := toggle.Toggle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, State{Favorited: true, Count: 6}, state)

	close(store.release)
	<-done

	assert.Equal(t, State{Favorited: true, Count: 6}, toggle.State())
	assert.Equal(t, StatusCommitted, toggle.Status())
	assert.Equal(t, 1, store.userDelta)
}

func TestToggle_TimeoutRollsBack(t *testing.T) {
	store := newFakeStore()
	store.release = make(chan struct{})
	defer close(store.release)

	toggle := NewToggle(store, "r1", "u1", nil, 5)
	toggle.SetTimeout(10 * time.Millisecond)

	state, err := toggle.Toggle(t.Context())
	require.Error(t, err)
	assert.Equal(t, State{Favorited: false, Count: 5}, state)
	assert.Equal(t, StatusRolledBack, toggle.Status())
}
