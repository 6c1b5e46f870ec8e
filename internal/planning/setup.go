package planning

import (
	"log"

	"github.com/ObraVista/OV-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "planning"); err != nil {
		log.Fatal("Failed to ensure schema planning: ", err)
	}

	if err := db.DB.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("Failed to enable uuid-ossp extension:", err)
	}

	if err := db.DB.AutoMigrate(
		&Project{},
		&Stage{},
		&ExecutionEntry{},
	); err != nil {
		log.Fatal("Failed to auto-migrate planning tables: ", err)
	}

	log.Println("Planning module initialized")
}
