// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getprofile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"golang.org/x/sync/errgroup"

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
	// UID selects whose profile to load. Empty means the caller's own.
	UID string `json:"uid"`
}

// Stats aggregates engagement over a user's recipes.
type Stats struct {
	TotalRecipes   int `json:"totalRecipes"`
	TotalFavorites int `json:"totalFavorites"`
	TotalShares    int `json:"totalShares"`

	MostPopular  *api.Recipe `json:"mostPopular,omitempty"`
	LeastPopular *api.Recipe `json:"leastPopular,omitempty"`
	MostShared   *api.Recipe `json:"mostShared,omitempty"`
}

type Response struct {
	Profile   api.Profile  `json:"profile"`
	Recipes   []api.Recipe `json:"recipes"`
	Favorites []api.Recipe `json:"favorites"`
	Stats     Stats        `json:"stats"`
}

// GetProfile loads a user's profile, their recipes, the recipes they
// favorited, and engagement stats computed over their own recipes.
func (h *Handler) GetProfile(ctx context.Context, req *Request) (*Response, error) {
	uid := req.UID
	if uid == "" {
		user := auth.UserFromContext(ctx)
		if !user.SignedIn() {
			return nil, web.NewError(http.StatusUnauthorized, errors.New("getprofile: sign in to view your profile"))
		}
		uid = user.UID
	}

	profile, err := h.store.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, recipedb.ErrNotFound) {
			return nil, web.NewError(http.StatusNotFound, errors.New("profile not found"))
		}
		return nil, fmt.Errorf("getprofile: getting user: %w", err)
	}

	var authored, favorited []recipedb.Recipe
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if authored, err = h.store.RecipesByAuthor(gctx, uid); err != nil {
			return fmt.Errorf("getprofile: listing authored recipes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if favorited, err = h.store.RecipesFavoritedBy(gctx, uid); err != nil {
			return fmt.Errorf("getprofile: listing favorited recipes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Response{
		Profile:   api.FromUser(profile),
		Recipes:   api.FromRecipes(authored),
		Favorites: api.FromRecipes(favorited),
		Stats:     computeStats(authored),
	}, nil
}

// computeStats derives the profile dashboard numbers from a user's own
// recipes. Ties on counts resolve to the alphabetically-first title so
// repeated loads show the same recipe.
func computeStats(recipes []recipedb.Recipe) Stats {
	stats := Stats{TotalRecipes: len(recipes)}
	for _, recipe := range recipes {
		stats.TotalFavorites += recipe.FavoritesCount
		stats.TotalShares += recipe.SharesCount
	}
	if len(recipes) == 0 {
		return stats
	}

	byTitle := make([]recipedb.Recipe, len(recipes))
	copy(byTitle, recipes)
	sort.SliceStable(byTitle, func(i, j int) bool { return byTitle[i].Title < byTitle[j].Title })

	byFavorites := make([]recipedb.Recipe, len(byTitle))
	copy(byFavorites, byTitle)
	sort.SliceStable(byFavorites, func(i, j int) bool {
		return byFavorites[i].FavoritesCount > byFavorites[j].FavoritesCount
	})
	most := api.FromRecipe(&byFavorites[0])
	least := api.FromRecipe(&byFavorites[len(byFavorites)-1])
	stats.MostPopular = &most
	stats.LeastPopular = &least

	byShares := make([]recipedb.Recipe, len(byTitle))
	copy(byShares, byTitle)
	sort.SliceStable(byShares, func(i, j int) bool {
		return byShares[i].SharesCount > byShares[j].SharesCount
	})
	shared := api.FromRecipe(&byShares[0])
	stats.MostShared = &shared

	return stats
}
