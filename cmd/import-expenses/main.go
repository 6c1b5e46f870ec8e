package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	csvPath     = flag.String("csv", "", "Path to the source CSV (required)")
	projectID   = flag.String("project", "", "Project UUID the expenses belong to (required)")
	dsn         = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun      = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
	confirm     = flag.Bool("confirm", false, "Required to perform inserts")
	advisoryKey = flag.Int64("advisory-lock", 0, "Optional Postgres advisory lock key. 0 = disabled")
)

// CSV contract
// date,invoiceNumber,description,supplier,stage,class,type,paymentMethod,admPercentage,value
// date is YYYY-MM-DD; type must be one of the finance expense types

var validTypes = map[string]struct{}{
	"material":       {},
	"labor":          {},
	"services":       {},
	"rental":         {},
	"administration": {},
}

type ExpenseCSV struct {
	Date          time.Time
	InvoiceNumber string
	Description   string
	Supplier      string
	Stage         string
	Class         string
	Type          string
	PaymentMethod string
	AdmPercentage float64
	Value         float64
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *csvPath == "" {
		fatalf("--csv is required")
	}
	if *projectID == "" {
		fatalf("--project is required")
	}
	if _, err := uuid.Parse(*projectID); err != nil {
		fatalf("--project is not a valid UUID: %v", err)
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	rows, err := loadCSV(*csvPath)
	if err != nil {
		fatalf("CSV error: %v", err)
	}

	fmt.Printf("Loaded %d expense rows from %s\n", len(rows), *csvPath)

	if *dryRun {
		printPlan(rows)
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	// Optional advisory lock to avoid concurrent runs
	if *advisoryKey != 0 {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, *advisoryKey); err != nil {
			fatalf("advisory lock: %v", err)
		}
	}

	var before int64
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM finance.expense_entries WHERE project_id = $1`, *projectID).Scan(&before); err != nil {
		fatalf("pre-count: %v", err)
	}
	fmt.Printf("Before: %d expense entries for project\n", before)

	if err := insertAll(ctx, tx, rows); err != nil {
		fatalf("insert data: %v", err)
	}

	var after int64
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM finance.expense_entries WHERE project_id = $1`, *projectID).Scan(&after); err != nil {
		fatalf("post-count: %v", err)
	}
	fmt.Printf("After:  %d expense entries for project\n", after)

	if after != before+int64(len(rows)) {
		fatalf("sanity check failed: expected %d entries, found %d", before+int64(len(rows)), after)
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}
	fmt.Println("Import complete")
}

func loadCSV(path string) ([]ExpenseCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	r := csv.NewReader(br)
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	required := []string{"date", "description", "supplier", "stage", "type", "value"}
	for _, k := range required {
		if _, ok := idx[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	get := func(rec []string, key string) string {
		i, ok := idx[key]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []ExpenseCSV
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		line++

		row := ExpenseCSV{
			InvoiceNumber: get(rec, "invoiceNumber"),
			Description:   get(rec, "description"),
			Supplier:      get(rec, "supplier"),
			Stage:         get(rec, "stage"),
			Class:         get(rec, "class"),
			Type:          get(rec, "type"),
			PaymentMethod: get(rec, "paymentMethod"),
		}

		if row.Description == "" {
			return nil, fmt.Errorf("row %d: description is empty", line)
		}
		if _, ok := validTypes[row.Type]; !ok {
			return nil, fmt.Errorf("row %d: invalid type '%s'", line, row.Type)
		}

		row.Date, err = time.Parse("2006-01-02", get(rec, "date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date: %w", line, err)
		}

		row.Value, err = strconv.ParseFloat(get(rec, "value"), 64)
		if err != nil || row.Value <= 0 {
			return nil, fmt.Errorf("row %d: value must be a positive number", line)
		}

		if adm := get(rec, "admPercentage"); adm != "" {
			row.AdmPercentage, err = strconv.ParseFloat(adm, 64)
			if err != nil || row.AdmPercentage < 0 || row.AdmPercentage > 100 {
				return nil, fmt.Errorf("row %d: admPercentage must be 0–100", line)
			}
		}

		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("CSV has no data rows")
	}
	return out, nil
}

func printPlan(rows []ExpenseCSV) {
	total := 0.0
	byType := map[string]int{}
	for _, r := range rows {
		total += r.Value
		byType[r.Type]++
	}
	fmt.Println("Plan preview:")
	fmt.Printf("  Entries to insert: %d\n", len(rows))
	fmt.Printf("  Total value: %.2f\n", total)
	for t, n := range byType {
		fmt.Printf("  %s: %d rows\n", t, n)
	}
}

func insertAll(ctx context.Context, tx *sql.Tx, rows []ExpenseCSV) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO finance.expense_entries
			(id, project_id, date, invoice_number, description, supplier, stage, class, type, payment_method, adm_percentage, value, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx, uuid.New(), *projectID, r.Date, r.InvoiceNumber,
			r.Description, r.Supplier, r.Stage, r.Class, r.Type, r.PaymentMethod, r.AdmPercentage, r.Value)
		if err != nil {
			return fmt.Errorf("insert expense '%s': %w", r.Description, err)
		}
	}
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
