package api

import (
	"net/http"

	"github.com/Goofygiraffe06/authpanel/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every route of the panel protocol.
func NewRouter(d *Deps, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, models.StatusResponse{Status: "ok"})
	})

	router.Route("/panels", func(r chi.Router) {
		r.Post("/", MountPanelHandler(d))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", GetPanelHandler(d))
			r.Delete("/", DeletePanelHandler(d))
			r.Post("/fields", FieldChangeHandler(d))
			r.Post("/visibility", VisibilityHandler(d))
			r.Post("/switch", SwitchPanelHandler(d))
			r.Post("/submit", SubmitHandler(d))
			r.Get("/events", EventsHandler(d))
		})
	})

	router.Get("/theme", GetThemeHandler(d))
	router.Put("/theme", SetThemeHandler(d))
	router.Post("/theme/toggle", ToggleThemeHandler(d))

	return router
}
