package contracts

import (
	"log"

	"github.com/ObraVista/OV-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "contracts"); err != nil {
		log.Fatal("Failed to ensure schema contracts: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(
		&Contract{},
		&Measurement{},
		&Payment{},
	); err != nil {
		log.Fatal("Failed to auto-migrate contracts tables: ", err)
	}

	log.Println("Contracts module initialized")
}
