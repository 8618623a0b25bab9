package http

import (
	"net/http"

	"ProfcomService/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter собирает маршруты HTTP API
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(server.RequestLogger(logger))
	r.Use(server.MetricsMiddleware)

	r.Post("/register", h.Register)
	r.Get("/login", h.Login)

	r.Route("/profile/{user_id}", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Get("/contact", h.GetContact)
		r.Patch("/", h.UpdateProfile)
		r.Delete("/", h.DeleteProfile)
	})

	r.Get("/guides", h.ListGuides)
	r.Post("/guides", h.CreateGuide)
	r.Patch("/guides/{guide_id}", h.UpdateGuide)

	r.Get("/contacts", h.ListContacts)
	r.Post("/contacts/filter", h.FilterContacts)

	return r
}
