package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ObraVista/OV-Backend/internal/auth"
	"github.com/ObraVista/OV-Backend/internal/contracts"
	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/ObraVista/OV-Backend/internal/finance"
	"github.com/ObraVista/OV-Backend/internal/middleware"
	"github.com/ObraVista/OV-Backend/internal/planning"
	"github.com/ObraVista/OV-Backend/internal/rdo"
	"github.com/ObraVista/OV-Backend/internal/webhooks"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	planning.Init()
	finance.Init()
	contracts.Init()
	rdo.Init()
	webhooks.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/planning", planning.SetupRoutes())
	r.Mount("/finance", finance.SetupRoutes())
	r.Mount("/contracts", contracts.SetupRoutes())
	r.Mount("/rdo", rdo.SetupRoutes())
	r.Mount("/webhooks", webhooks.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
