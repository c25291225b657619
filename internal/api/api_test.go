// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/recipehub/server/internal/recipedb"
)

func TestSummarizeReviews(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		summary := SummarizeReviews(nil)
		assert.Zero(t, summary.Average)
		assert.Zero(t, summary.TotalReviews)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, summary.Distribution)
	})

	t.Run("mean and distribution", func(t *testing.T) {
		summary := SummarizeReviews([]recipedb.Review{
			{Rating: 5},
			{Rating: 4},
			{Rating: 4},
			{Rating: 1},
		})
		assert.InDelta(t, 3.5, summary.Average, 0.0001)
		assert.Equal(t, 4, summary.TotalReviews)
		assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 0, 4: 2, 5: 1}, summary.Distribution)
	})
}

func TestSortReviewsNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	reviews := []recipedb.Review{
		{ID: "b", CreatedAt: base},
		{ID: "c", CreatedAt: base.Add(time.Hour)},
		{ID: "a", CreatedAt: base},
	}

	SortReviewsNewestFirst(reviews)

	assert.Equal(t, "c", reviews[0].ID)
	assert.Equal(t, "a", reviews[1].ID)
	assert.Equal(t, "b", reviews[2].ID)
}

func TestFromRecipeHidesFavoriteSet(t *testing.T) {
	recipe := recipedb.Recipe{
		ID:             "r1",
		Title:          "Tomato Pasta",
		Difficulty:     recipedb.DifficultyEasy,
		FavoritesCount: 3,
		FavoritedBy:    []string{"u1", "u2", "u3"},
	}

	got := FromRecipe(&recipe)

	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, "Easy", got.Difficulty)
	assert.Equal(t, 3, got.FavoritesCount)
}
