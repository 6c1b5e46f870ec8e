package finance

import (
	"log"

	"github.com/ObraVista/OV-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "finance"); err != nil {
		log.Fatal("Failed to ensure schema finance: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(&ExpenseEntry{}); err != nil {
		log.Fatal("Failed to auto-migrate finance tables: ", err)
	}

	LoadPalette("internal/finance/data/palette.yaml")

	log.Println("Finance module initialized")
}
