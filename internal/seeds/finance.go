package seeds

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/ObraVista/OV-Backend/internal/finance"
	"gorm.io/gorm"
)

func SeedExpenses() error {
	file, err := os.ReadFile("internal/finance/data/expenses.json")
	if err != nil {
		return fmt.Errorf("could not read expenses.json: %w", err)
	}

	var entries []finance.ExpenseEntry
	if err := json.Unmarshal(file, &entries); err != nil {
		return fmt.Errorf("failed to parse expenses.json: %w", err)
	}

	created := 0
	for _, entry := range entries {
		var existing finance.ExpenseEntry
		err := db.DB.First(&existing, "id = ?", entry.ID).Error
		if err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on expense %s: %w", entry.Description, err)
		}

		if err := db.DB.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create expense %s: %w", entry.Description, err)
		}
		created++
	}

	log.Printf("Seeded %d expense entries", created)
	return nil
}
