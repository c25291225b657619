// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recipehub/server/internal/config"
	"github.com/recipehub/server/internal/favorites"
	"github.com/recipehub/server/internal/handler/addrecipe"
	"github.com/recipehub/server/internal/handler/addreview"
	"github.com/recipehub/server/internal/handler/deleterecipe"
	"github.com/recipehub/server/internal/handler/deletereview"
	"github.com/recipehub/server/internal/handler/getprofile"
	"github.com/recipehub/server/internal/handler/getrecipe"
	"github.com/recipehub/server/internal/handler/listrecipes"
	"github.com/recipehub/server/internal/handler/listreviews"
	"github.com/recipehub/server/internal/handler/sharerecipe"
	"github.com/recipehub/server/internal/handler/signup"
	"github.com/recipehub/server/internal/handler/togglefavorite"
	"github.com/recipehub/server/internal/handler/updateprofile"
	"github.com/recipehub/server/internal/handler/updaterecipe"
	"github.com/recipehub/server/internal/handler/updatereview"
	"github.com/recipehub/server/internal/images"
	"github.com/recipehub/server/internal/recipedb"
	"github.com/recipehub/server/internal/web"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	store := recipedb.NewStore(firestore)
	imgs := images.NewWriter(storage, publicBucket)

	toggleTimeout := favorites.DefaultTimeout
	if conf.Favorites.TimeoutSeconds > 0 {
		toggleTimeout = time.Duration(conf.Favorites.TimeoutSeconds) * time.Second
	}

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		switch {
		case r.URL.Path == "/api/signup":
			return false
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		default:
			return true
		}
	}))

	web.Handle(mux, "/api/signup", signup.NewHandler(fbAuth, store).Signup)
	web.Handle(mux, "/api/recipes/get", getrecipe.NewHandler(store).GetRecipe)
	web.Handle(mux, "/api/recipes/list", listrecipes.NewHandler(store).ListRecipes)
	web.Handle(mux, "/api/recipes/add", addrecipe.NewHandler(store, imgs).AddRecipe)
	web.Handle(mux, "/api/recipes/update", updaterecipe.NewHandler(store, imgs).UpdateRecipe)
	web.Handle(mux, "/api/recipes/delete", deleterecipe.NewHandler(store).DeleteRecipe)
	web.Handle(mux, "/api/recipes/favorite", togglefavorite.NewHandler(store, toggleTimeout).ToggleFavorite)
	web.Handle(mux, "/api/recipes/share", sharerecipe.NewHandler(store).ShareRecipe)
	web.Handle(mux, "/api/reviews/add", addreview.NewHandler(store).AddReview)
	web.Handle(mux, "/api/reviews/update", updatereview.NewHandler(store).UpdateReview)
	web.Handle(mux, "/api/reviews/delete", deletereview.NewHandler(store).DeleteReview)
	web.Handle(mux, "/api/reviews/list", listreviews.NewHandler(store).ListReviews)
	web.Handle(mux, "/api/profile/get", getprofile.NewHandler(store).GetProfile)
	web.Handle(mux, "/api/profile/update", updateprofile.NewHandler(store, imgs).UpdateProfile)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
