package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/phrazzld/cardflow/internal/api/middleware"
	"github.com/phrazzld/cardflow/internal/bus"
	"github.com/phrazzld/cardflow/internal/service/auth"
)

// RouterDeps are the collaborators of the intake router.
type RouterDeps struct {
	Bus    bus.Putter
	State  StateReader
	Logger *slog.Logger
	// JWT, when set, protects every /api route.
	JWT auth.JWTService
}

// NewRouter builds the intake HTTP handler.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(deps.Logger))

	intents := NewIntentHandler(deps.Bus, deps.Logger)
	states := NewStateHandler(deps.State, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		if deps.JWT != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(deps.JWT).Authenticate)
		}

		r.Post("/intents", intents.Submit)
		r.Post("/modal", states.OpenModal)

		r.Get("/state", states.GetSnapshot)
		r.Get("/notifications", states.ListNotifications)
		r.Get("/boards/{id}", states.GetBoard)
		r.Get("/lists/{id}", states.GetList)
		r.Get("/cards/{id}", states.GetCard)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			deps.Logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
