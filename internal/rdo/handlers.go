package rdo

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/ObraVista/OV-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListReports returns a project's daily reports, newest first, optionally
// narrowed to a date range.
func ListReports(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	query := db.DB.Where("project_id = ?", projectID).Order("date DESC")
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			http.Error(w, "Invalid from date", http.StatusBadRequest)
			return
		}
		query = query.Where("date >= ?", t)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			http.Error(w, "Invalid to date", http.StatusBadRequest)
			return
		}
		query = query.Where("date <= ?", t)
	}

	var reports []DailyReport
	if err := query.Find(&reports).Error; err != nil {
		http.Error(w, "Failed to fetch reports: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}

// GetReport returns a single daily report.
func GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")

	var report DailyReport
	if err := db.DB.First(&report, "id = ?", reportID).Error; err != nil {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// CreateReport files the daily report for a project. One report per project
// per day; duplicates conflict.
func CreateReport(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "project_id"))
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return
	}

	var input struct {
		Date           string   `json:"date"`
		Weather        string   `json:"weather"`
		WorkforceCount int      `json:"workforce_count"`
		Activities     []string `json:"activities"`
		Equipment      []string `json:"equipment"`
		Notes          string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		http.Error(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if input.WorkforceCount < 0 {
		http.Error(w, "workforce_count must not be negative", http.StatusBadRequest)
		return
	}

	var existing DailyReport
	err = db.DB.First(&existing, "project_id = ? AND date = ?", projectID, date).Error
	if err == nil {
		http.Error(w, "A report already exists for this date", http.StatusConflict)
		return
	}

	userID, _ := utils.GetUserIDFromContext(r.Context())

	report := DailyReport{
		ProjectID:      projectID,
		Date:           date,
		Weather:        input.Weather,
		WorkforceCount: input.WorkforceCount,
		Activities:     input.Activities,
		Equipment:      input.Equipment,
		Notes:          input.Notes,
		CreatedBy:      userID,
	}

	if err := db.DB.Create(&report).Error; err != nil {
		http.Error(w, "Failed to create report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}
