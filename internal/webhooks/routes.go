package webhooks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/bank/payments", BankPaymentWebhook)
	return r
}
