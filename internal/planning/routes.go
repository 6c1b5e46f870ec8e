package planning

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

		r.Get("/projects", ListProjects)
		r.Get("/projects/{project_id}", GetProject)
		r.Get("/projects/{project_id}/summary", GetPlanningSummary)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(sessionFetcher, "contractor"))
			r.Post("/projects/{project_id}/stages", CreateStage)
			r.Post("/stages/{stage_id}/executions", CreateExecutionEntry)
			r.Put("/stages/{stage_id}/late", SetStageLate)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware(sessionFetcher))
			r.Post("/projects", CreateProject)
		})
	})

	return r
}
