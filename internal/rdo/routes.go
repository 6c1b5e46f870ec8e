package rdo

import (
	"net/http"

	"github.com/ObraVista/OV-Backend/internal/auth"
	"github.com/ObraVista/OV-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Get("/projects/{project_id}/reports", ListReports)
		r.Get("/reports/{report_id}", GetReport)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(sessionFetcher, "contractor"))
			r.Post("/projects/{project_id}/reports", CreateReport)
		})
	})

	return r
}
