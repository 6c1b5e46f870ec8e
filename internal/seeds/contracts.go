package seeds

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ObraVista/OV-Backend/internal/contracts"
	"github.com/ObraVista/OV-Backend/internal/db"
	"gorm.io/gorm"
)

type contractsSeed struct {
	Contracts    []contracts.Contract    `json:"contracts"`
	Measurements []contracts.Measurement `json:"measurements"`
	Payments     []contracts.Payment     `json:"payments"`
}

func SeedContracts() error {
	file, err := os.ReadFile("internal/contracts/data/contracts.json")
	if err != nil {
		return fmt.Errorf("could not read contracts.json: %w", err)
	}

	var seed contractsSeed
	if err := json.Unmarshal(file, &seed); err != nil {
		return fmt.Errorf("failed to parse contracts.json: %w", err)
	}

	for _, contract := range seed.Contracts {
		var existing contracts.Contract
		err := db.DB.First(&existing, "id = ?", contract.ID).Error
		if err == nil {
			log.Printf("Contract exists, skipping: %s", contract.Title)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on contract %s: %w", contract.Title, err)
		}

		if err := db.DB.Create(&contract).Error; err != nil {
			return fmt.Errorf("failed to create contract %s: %w", contract.Title, err)
		}
	}

	for _, m := range seed.Measurements {
		var existing contracts.Measurement
		err := db.DB.First(&existing, "id = ?", m.ID).Error
		if err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on measurement: %w", err)
		}

		if err := db.DB.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to create measurement: %w", err)
		}
	}

	for _, p := range seed.Payments {
		var existing contracts.Payment
		err := db.DB.First(&existing, "id = ?", p.ID).Error
		if err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on payment: %w", err)
		}

		if err := db.DB.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
	}

	// Balances derive from the seeded payments and measurements.
	for _, contract := range seed.Contracts {
		var full contracts.Contract
		err := db.DB.Preload("Measurements").Preload("Payments").
			First(&full, "id = ?", contract.ID).Error
		if err != nil {
			return fmt.Errorf("failed to reload contract %s: %w", contract.Title, err)
		}

		contracts.RecomputeBalance(&full)
		updates := map[string]interface{}{
			"paid_value":     full.PaidValue,
			"received_value": full.ReceivedValue,
			"balance_value":  full.BalanceValue,
		}
		if full.Type == contracts.TypeLumpSum {
			settled := full.PaidValue
			if full.Direction == contracts.DirectionClient {
				settled = full.ReceivedValue
			}
			updates["remaining_value"] = full.TotalValue - settled
		}
		err = db.DB.Model(&contracts.Contract{}).Where("id = ?", full.ID).
			Updates(updates).Error
		if err != nil {
			return fmt.Errorf("failed to update balance for %s: %w", contract.Title, err)
		}
	}

	log.Printf("Seeded %d contracts, %d measurements, %d payments",
		len(seed.Contracts), len(seed.Measurements), len(seed.Payments))
	return nil
}
