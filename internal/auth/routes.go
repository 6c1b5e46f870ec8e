package auth

import (
	"net/http"

	"github.com/ObraVista/OV-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimiter())
		r.Post("/login", LoginHandler)
		r.Post("/register", RegisterHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/logout", LogoutHandler)
		r.Get("/me", MeHandler)
		r.Post("/update-password", UpdatePasswordHandler)
	})

	return r
}
