package seeds

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/ObraVista/OV-Backend/internal/planning"
	"gorm.io/gorm"
)

type planningSeed struct {
	Projects   []planning.Project        `json:"projects"`
	Stages     []planning.Stage          `json:"stages"`
	Executions []planning.ExecutionEntry `json:"executions"`
}

func SeedProjects() error {
	file, err := os.ReadFile("internal/planning/data/projects.json")
	if err != nil {
		return fmt.Errorf("could not read projects.json: %w", err)
	}

	var seed planningSeed
	if err := json.Unmarshal(file, &seed); err != nil {
		return fmt.Errorf("failed to parse projects.json: %w", err)
	}

	for _, project := range seed.Projects {
		var existing planning.Project
		err := db.DB.First(&existing, "id = ?", project.ID).Error

		if err == nil {
			log.Printf("Project exists, skipping: %s", project.Name)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on project %s: %w", project.Name, err)
		}

		if err := db.DB.Create(&project).Error; err != nil {
			return fmt.Errorf("failed to create project %s: %w", project.Name, err)
		}
	}

	// Seed stages with their derived fields already consistent with the
	// execution entries.
	stages := planning.RecomputeStages(seed.Stages, seed.Executions)
	for _, stage := range stages {
		var existing planning.Stage
		err := db.DB.First(&existing, "id = ?", stage.ID).Error
		if err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on stage %s: %w", stage.Name, err)
		}

		if err := db.DB.Create(&stage).Error; err != nil {
			return fmt.Errorf("failed to create stage %s: %w", stage.Name, err)
		}
	}

	for _, entry := range seed.Executions {
		var existing planning.ExecutionEntry
		err := db.DB.First(&existing, "id = ?", entry.ID).Error
		if err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on execution entry: %w", err)
		}

		if err := db.DB.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create execution entry: %w", err)
		}
	}

	log.Printf("Seeded %d projects, %d stages, %d execution entries",
		len(seed.Projects), len(stages), len(seed.Executions))
	return nil
}
