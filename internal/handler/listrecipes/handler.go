// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listrecipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/recipehub/server/internal/api"
	"github.com/recipehub/server/internal/recipedb"
)

const defaultPerPage = 6

func NewHandler(store *recipedb.Store) *Handler {
	return &Handler{
		store: store,
	}
}

type Handler struct {
	store *recipedb.Store
}

type Request struct {
	// Query is matched as a case-insensitive substring of the title or
	// any tag.
	Query string `json:"query"`

	// Category filters to one category; empty or "All" means no filter.
	Category string `json:"category"`

	// Difficulty filters to one difficulty; empty or "All" means no filter.
	Difficulty string `json:"difficulty"`

	// Page is the 1-based page to return.
	Page int `json:"page"`

	// PerPage is the page size, defaulting to 6.
	PerPage int `json:"perPage"`
}

type Response struct {
	Recipes    []api.Recipe `json:"recipes"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`

	// Categories and Difficulties are the filter options present in the
	// catalog.
	Categories   []string `json:"categories"`
	Difficulties []string `json:"difficulties"`
}

func (h *Handler) ListRecipes(ctx context.Context, req *Request) (*Response, error) {
	recipes, err := h.store.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listrecipes: listing recipes: %w", err)
	}

	filtered := filterRecipes(recipes, req.Query, req.Category, req.Difficulty)
	page, perPage := normalizePage(req.Page, req.PerPage)
	windowed, totalPages := paginate(filtered, page, perPage)

	return &Response{
		Recipes:      api.FromRecipes(windowed),
		Total:        len(filtered),
		Page:         page,
		TotalPages:   totalPages,
		Categories:   options(recipes, func(r *recipedb.Recipe) string { return r.Category }),
		Difficulties: options(recipes, func(r *recipedb.Recipe) string { return string(r.Difficulty) }),
	}, nil
}

func filterRecipes(recipes []recipedb.Recipe, query string, category string, difficulty string) []recipedb.Recipe {
	query = strings.ToLower(strings.TrimSpace(query))

	filtered := make([]recipedb.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if !matchesQuery(&recipe, query) {
			continue
		}
		if category != "" && category != "All" && recipe.Category != category {
			continue
		}
		if difficulty != "" && difficulty != "All" && string(recipe.Difficulty) != difficulty {
			continue
		}
		filtered = append(filtered, recipe)
	}
	return filtered
}

func matchesQuery(recipe *recipedb.Recipe, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(recipe.Title), query) {
		return true
	}
	for _, tag := range recipe.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func normalizePage(page int, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return page, perPage
}

func paginate(recipes []recipedb.Recipe, page int, perPage int) ([]recipedb.Recipe, int) {
	totalPages := (len(recipes) + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start >= len(recipes) {
		return nil, totalPages
	}
	end := min(start+perPage, len(recipes))
	return recipes[start:end], totalPages
}

// options returns the distinct non-empty values of a recipe field in
// first-seen order, matching how the catalog derives its filter lists.
func options(recipes []recipedb.Recipe, field func(*recipedb.Recipe) string) []string {
	seen := map[string]bool{}
	var values []string
	for i := range recipes {
		if v := field(&recipes[i]); v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}
