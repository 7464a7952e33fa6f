package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/TwigBush/keyrules-go/internal/authority"
	"github.com/TwigBush/keyrules-go/internal/authz"
	"github.com/TwigBush/keyrules-go/internal/handlers"
	mw2 "github.com/TwigBush/keyrules-go/internal/mw"
	"github.com/TwigBush/keyrules-go/internal/version"
)

type Options struct {
	EnableCORS bool
}

type Deps struct {
	Backend authz.Backend

	// Authority enables the /admin/reload endpoint when the backend is
	// the keyfile engine; nil disables it.
	Authority *authority.Authority
}

func BuildRouter(d Deps, opts Options, mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if opts.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         300,
		}))
	}
	for _, m := range mw {
		r.Use(m)
	}

	// tracing + logger
	r.Use(mw2.Trace())
	r.Use(mw2.Logger(mw2.LogOpts{
		SkipPaths:     []string{"/healthz", "/version"},
		RedactHeaders: []string{"Authorization"},
	}))

	check := handlers.NewCheckHandler(d.Backend)
	admins := handlers.NewAdminsHandler(d.Backend)

	r.Get("/healthz", healthCheckHandler)
	r.Get("/version", handlers.Version)

	r.Post("/check", check.ServeHTTP)
	r.Post("/admins", admins.ServeHTTP)

	if d.Authority != nil {
		reload := handlers.NewReloadHandler(d.Authority)
		r.Post("/admin/reload", reload.ServeHTTP)
	}

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": version.Version,
	})
}
