// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listrecipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipehub/server/internal/recipedb"
)

func catalog() []recipedb.Recipe {
	return []recipedb.Recipe{
		{ID: "1", Title: "Tomato Pasta", Category: "Italian", Difficulty: recipedb.DifficultyEasy, Tags: []string{"pasta", "quick"}},
		{ID: "2", Title: "Miso Soup", Category: "Japanese", Difficulty: recipedb.DifficultyEasy, Tags: []string{"soup"}},
		{ID: "3", Title: "Beef Wellington", Category: "British", Difficulty: recipedb.DifficultyHard, Tags: []string{"beef"}},
		{ID: "4", Title: "Pasta Carbonara", Category: "Italian", Difficulty: recipedb.DifficultyMedium, Tags: []string{"pasta"}},
	}
}

func TestFilterRecipes(t *testing.T) {
	t.Run("no filters returns all", func(t *testing.T) {
		assert.Len(t, filterRecipes(catalog(), "", "", ""), 4)
	})

	t.Run("query matches title case-insensitively", func(t *testing.T) {
		got := filterRecipes(catalog(), "PASTA", "", "")
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "4", got[1].ID)
	})

	t.Run("query matches tags", func(t *testing.T) {
		got := filterRecipes(catalog(), "soup", "", "")
		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		assert.Len(t, filterRecipes(catalog(), "", "Italian", ""), 2)
	})

	t.Run("All bypasses filters", func(t *testing.T) {
		assert.Len(t, filterRecipes(catalog(), "", "All", "All"), 4)
	})

	t.Run("filters combine", func(t *testing.T) {
		got := filterRecipes(catalog(), "pasta", "Italian", "Medium")
		require.Len(t, got, 1)
		assert.Equal(t, "4", got[0].ID)
	})
}

func TestPaginate(t *testing.T) {
	recipes := catalog()

	t.Run("first page", func(t *testing.T) {
		window, totalPages := paginate(recipes, 1, 3)
		assert.Len(t, window, 3)
		assert.Equal(t, 2, totalPages)
	})

	t.Run("last partial page", func(t *testing.T) {
		window, totalPages := paginate(recipes, 2, 3)
		require.Len(t, window, 1)
		assert.Equal(t, "4", window[0].ID)
		assert.Equal(t, 2, totalPages)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		window, totalPages := paginate(recipes, 5, 3)
		assert.Empty(t, window)
		assert.Equal(t, 2, totalPages)
	})

	t.Run("empty catalog", func(t *testing.T) {
		window, totalPages := paginate(nil, 1, 3)
		assert.Empty(t, window)
		assert.Zero(t, totalPages)
	})
}

func TestNormalizePage(t *testing.T) {
	page, perPage := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPerPage, perPage)

	page, perPage = normalizePage(3, 12)
	assert.Equal(t, 3, page)
	assert.Equal(t, 12, perPage)
}

func TestOptions(t *testing.T) {
	categories := options(catalog(), func(r *recipedb.Recipe) string { return r.Category })
	assert.Equal(t, []string{"Italian", "Japanese", "British"}, categories)

	difficulties := options(catalog(), func(r *recipedb.Recipe) string { return string(r.Difficulty) })
	assert.Equal(t, []string{"Easy", "Hard", "Medium"}, difficulties)
}
