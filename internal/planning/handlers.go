package planning

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListProjects returns all projects. Clients see only their own.
func ListProjects(w http.ResponseWriter, r *http.Request) {
	query := db.DB.Model(&Project{})
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var projects []Project
	if err := query.Find(&projects).Error; err != nil {
		http.Error(w, "Failed to fetch projects: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

// GetProject returns a single project with its stages.
func GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var project Project
	if err := db.DB.Preload("Stages", func(d *gorm.DB) *gorm.DB {
		return d.Order("sort_order ASC")
	}).First(&project, "id = ?", projectID).Error; err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

// CreateProject creates a new project (admin only).
func CreateProject(w http.ResponseWriter, r *http.Request) {
	var project Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if project.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	if err := db.DB.Create(&project).Error; err != nil {
		http.Error(w, "Failed to create project: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(project)
}

// CreateStage adds a planning stage to a project.
func CreateStage(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "project_id"))
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	var input struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		PlannedValue float64 `json:"planned_value"`
		SortOrder    int     `json:"sort_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	if input.PlannedValue <= 0 || math.IsNaN(input.PlannedValue) || math.IsInf(input.PlannedValue, 0) {
		http.Error(w, "planned_value must be a positive number", http.StatusBadRequest)
		return
	}

	stage := Stage{
		ProjectID:    projectID,
		Name:         input.Name,
		Description:  input.Description,
		PlannedValue: input.PlannedValue,
		Status:       StatusNotStarted,
		SortOrder:    input.SortOrder,
	}

	if err := db.DB.Create(&stage).Error; err != nil {
		http.Error(w, "Failed to create stage: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(stage)
}

// SetStageLate flips the LATE override on a stage. It does not touch the
// value-derived status.
func SetStageLate(w http.ResponseWriter, r *http.Request) {
	stageID := chi.URLParam(r, "stage_id")

	var stage Stage
	if err := db.DB.First(&stage, "id = ?", stageID).Error; err != nil {
		http.Error(w, "Stage not found", http.StatusNotFound)
		return
	}

	var input struct {
		Late bool `json:"late"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := db.DB.Model(&stage).Update("late", input.Late).Error; err != nil {
		http.Error(w, "Failed to update stage: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{"id": stage.ID, "late": input.Late})
}

// CreateExecutionEntry records actual spend against a stage and runs one
// recompute pass over the project's stages inside the same transaction.
func CreateExecutionEntry(w http.ResponseWriter, r *http.Request) {
	stageID, err := uuid.Parse(chi.URLParam(r, "stage_id"))
	if err != nil {
		http.Error(w, "Invalid stage id", http.StatusBadRequest)
		return
	}

	var input struct {
		Description string  `json:"description"`
		Value       float64 `json:"value"`
		Date        string  `json:"date"`
		Category    string  `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Value <= 0 || math.IsNaN(input.Value) || math.IsInf(input.Value, 0) {
		http.Error(w, "value must be a positive number", http.StatusBadRequest)
		return
	}
	switch input.Category {
	case CategoryMaterial, CategoryLabor, CategoryEquipment, CategoryThirdParty, CategoryOther:
	default:
		http.Error(w, "Invalid category", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		http.Error(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var stage Stage
	if err := db.DB.First(&stage, "id = ?", stageID).Error; err != nil {
		http.Error(w, "Stage not found", http.StatusNotFound)
		return
	}

	entry := ExecutionEntry{
		StageID:     stageID,
		Description: input.Description,
		Value:       input.Value,
		Date:        date,
		Category:    input.Category,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Failed to start transaction", http.StatusInternalServerError)
		return
	}

	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Failed to create execution entry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := recomputeProject(tx, stage.ProjectID); err != nil {
		tx.Rollback()
		http.Error(w, "Failed to recompute stages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Failed to commit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// recomputeProject reloads the project's stages and execution entries and
// persists freshly derived fields for every stage.
func recomputeProject(tx *gorm.DB, projectID uuid.UUID) error {
	var stages []Stage
	if err := tx.Where("project_id = ?", projectID).Order("sort_order ASC").Find(&stages).Error; err != nil {
		return err
	}

	stageIDs := make([]uuid.UUID, len(stages))
	for i, s := range stages {
		stageIDs[i] = s.ID
	}

	var executions []ExecutionEntry
	if len(stageIDs) > 0 {
		if err := tx.Where("stage_id IN ?", stageIDs).Find(&executions).Error; err != nil {
			return err
		}
	}

	for _, s := range RecomputeStages(stages, executions) {
		err := tx.Model(&Stage{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
			"executed_value": s.ExecutedValue,
			"difference":     s.Difference,
			"status":         s.Status,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetPlanningSummary returns the recomputed stages and the project totals.
func GetPlanningSummary(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "project_id"))
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	var stages []Stage
	if err := db.DB.Where("project_id = ?", projectID).Order("sort_order ASC").Find(&stages).Error; err != nil {
		http.Error(w, "Failed to fetch stages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stageIDs := make([]uuid.UUID, len(stages))
	for i, s := range stages {
		stageIDs[i] = s.ID
	}
	var executions []ExecutionEntry
	if len(stageIDs) > 0 {
		if err := db.DB.Where("stage_id IN ?", stageIDs).Find(&executions).Error; err != nil {
			http.Error(w, "Failed to fetch executions: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	// Derive on read so the summary can't drift from the execution list.
	stages = RecomputeStages(stages, executions)
	totals := ComputeTotals(stages)

	type stageView struct {
		Stage
		EffectiveStatus string `json:"effective_status"`
	}
	views := make([]stageView, len(stages))
	for i, s := range stages {
		views[i] = stageView{Stage: s, EffectiveStatus: s.EffectiveStatus()}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"stages": views,
		"totals": totals,
	}); err != nil {
		log.Printf("Failed to encode planning summary: %v", err)
	}
}
