package webhooks

import (
	"log"

	"github.com/ObraVista/OV-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "inbox"); err != nil {
		log.Fatal("Failed to ensure schema inbox: ", err)
	}

	if err := db.DB.Exec(`
		CREATE TABLE IF NOT EXISTS inbox.payment_events (
			event_id   text PRIMARY KEY,
			payload    jsonb NOT NULL,
			reference  text,
			status     text,
			created_at timestamptz NOT NULL DEFAULT now()
		)
	`).Error; err != nil {
		log.Fatal("Failed to create inbox.payment_events: ", err)
	}

	log.Println("Webhooks module initialized")
}
