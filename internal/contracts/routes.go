package contracts

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

		r.Get("/", ListContracts)
		r.Get("/{contract_id}", GetContract)
		r.Get("/{contract_id}/totals", GetContractTotals)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(sessionFetcher, "contractor"))
			r.Post("/{contract_id}/measurements", CreateMeasurement)
			r.Post("/{contract_id}/payments", CreatePayment)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminMiddleware(sessionFetcher))
			r.Post("/", CreateContract)
			r.Put("/measurements/{measurement_id}/review", ReviewMeasurement)
			r.Put("/payments/{payment_id}/complete", CompletePayment)
		})
	})

	return r
}
