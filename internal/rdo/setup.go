package rdo

import (
	"log"

	"github.com/ObraVista/OV-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "rdo"); err != nil {
		log.Fatal("Failed to ensure schema rdo: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(&DailyReport{}); err != nil {
		log.Fatal("Failed to auto-migrate rdo tables: ", err)
	}

	log.Println("RDO module initialized")
}
