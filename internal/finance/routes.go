package finance

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

		r.Get("/expenses", ListExpenses)
		r.Get("/expenses/distribution", GetDistribution)
		r.Get("/expenses/abc", GetABCReport)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(sessionFetcher, "contractor"))
			r.Post("/expenses", CreateExpense)
		})
	})

	return r
}
