package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupAuthRoutes(r chi.Router, auth *AuthenticationHandler, users *UserHandler, requireAuth func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", users.Register)
		r.Post("/login", auth.Login)
		r.Post("/refresh", auth.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/self", users.Self)
			r.Post("/logout", auth.Logout)
			r.Post("/logout/all", auth.LogoutAll)
		})
	})
}

func SetupHealthRoutes(r chi.Router, health *HealthHandler) {
	r.Get("/health", health.Health)
}
