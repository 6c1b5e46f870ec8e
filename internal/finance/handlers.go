package finance

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/google/uuid"
)

func parseFilters(r *http.Request) (Filters, error) {
	q := r.URL.Query()
	f := Filters{
		Search:   q.Get("search"),
		Type:     q.Get("type"),
		Stage:    q.Get("stage"),
		Supplier: q.Get("supplier"),
	}

	if v := q.Get("date_from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, err
		}
		f.DateTo = &t
	}
	if v := q.Get("min_value"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, err
		}
		f.MinValue = &n
	}
	if v := q.Get("max_value"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, err
		}
		f.MaxValue = &n
	}
	return f, nil
}

func loadEntries(r *http.Request) ([]ExpenseEntry, error) {
	query := db.DB.Model(&ExpenseEntry{}).Order("date ASC, created_at ASC")
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var entries []ExpenseEntry
	err := query.Find(&entries).Error
	return entries, err
}

// ListExpenses returns expense entries with optional filtering and sorting,
// applied in memory over the project's entry set.
func ListExpenses(w http.ResponseWriter, r *http.Request) {
	entries, err := loadEntries(r)
	if err != nil {
		http.Error(w, "Failed to fetch expenses: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filters, err := parseFilters(r)
	if err != nil {
		http.Error(w, "Invalid filter format", http.StatusBadRequest)
		return
	}
	entries = FilterEntries(entries, filters)

	if field := r.URL.Query().Get("sort"); field != "" {
		order := SortOrder(r.URL.Query().Get("order"))
		if order != SortAsc {
			order = SortDesc
		}
		entries = SortEntries(entries, field, order)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// CreateExpense records a new expense entry.
func CreateExpense(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProjectID     uuid.UUID `json:"project_id"`
		Date          string    `json:"date"`
		InvoiceNumber string    `json:"invoice_number"`
		Description   string    `json:"description"`
		Supplier      string    `json:"supplier"`
		Stage         string    `json:"stage"`
		Class         string    `json:"class"`
		Type          string    `json:"type"`
		PaymentMethod string    `json:"payment_method"`
		AdmPercentage float64   `json:"adm_percentage"`
		Value         float64   `json:"value"`
		Tags          []string  `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if input.ProjectID == uuid.Nil || input.Description == "" {
		http.Error(w, "project_id and description are required", http.StatusBadRequest)
		return
	}
	if input.Value <= 0 || math.IsNaN(input.Value) || math.IsInf(input.Value, 0) {
		http.Error(w, "value must be a positive number", http.StatusBadRequest)
		return
	}
	if input.AdmPercentage < 0 || input.AdmPercentage > 100 {
		http.Error(w, "adm_percentage must be between 0 and 100", http.StatusBadRequest)
		return
	}
	switch input.Type {
	case TypeMaterial, TypeLabor, TypeServices, TypeRental, TypeAdministration:
	default:
		http.Error(w, "Invalid expense type", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		http.Error(w, "Invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	entry := ExpenseEntry{
		ProjectID:     input.ProjectID,
		Date:          date,
		InvoiceNumber: input.InvoiceNumber,
		Description:   input.Description,
		Supplier:      input.Supplier,
		Stage:         input.Stage,
		Class:         input.Class,
		Type:          input.Type,
		PaymentMethod: input.PaymentMethod,
		AdmPercentage: input.AdmPercentage,
		Value:         input.Value,
		Tags:          input.Tags,
	}

	if err := db.DB.Create(&entry).Error; err != nil {
		http.Error(w, "Failed to create expense: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

var dimensions = map[string]KeyFunc{
	"type":     ByType,
	"stage":    ByStage,
	"supplier": BySupplier,
	"month":    ByMonth,
}

// GetDistribution returns the cost distribution grouped by the requested
// dimension (type, stage, supplier or month). ?top=N limits to the N
// largest groups, descending.
func GetDistribution(w http.ResponseWriter, r *http.Request) {
	key, ok := dimensions[r.URL.Query().Get("by")]
	if !ok {
		http.Error(w, "Unknown dimension, expected type|stage|supplier|month", http.StatusBadRequest)
		return
	}

	entries, err := loadEntries(r)
	if err != nil {
		http.Error(w, "Failed to fetch expenses: "+err.Error(), http.StatusInternalServerError)
		return
	}

	groups := AggregateBy(entries, key)
	if topStr := r.URL.Query().Get("top"); topStr != "" {
		top, err := strconv.Atoi(topStr)
		if err != nil || top < 1 {
			http.Error(w, "Invalid top parameter", http.StatusBadRequest)
			return
		}
		groups = TopGroups(groups, top)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(groups)
}

// GetABCReport returns the ABC classification of the project's expenses.
func GetABCReport(w http.ResponseWriter, r *http.Request) {
	entries, err := loadEntries(r)
	if err != nil {
		http.Error(w, "Failed to fetch expenses: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ClassifyABC(entries))
}
