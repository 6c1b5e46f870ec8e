package main

import (
	"log"

	"github.com/ObraVista/OV-Backend/internal/auth"
	"github.com/ObraVista/OV-Backend/internal/contracts"
	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/ObraVista/OV-Backend/internal/finance"
	"github.com/ObraVista/OV-Backend/internal/planning"
	"github.com/ObraVista/OV-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	planning.Init()
	finance.Init()
	contracts.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatal("Seeding failed: ", err)
	}
	log.Println("Seeding complete")
}
