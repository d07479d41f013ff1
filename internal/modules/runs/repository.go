package runs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repository persists calculation runs
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new run repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "runs").Logger(),
	}
}

// Record stores a completed calculation. Recording is best-effort: a storage
// failure is logged and must never fail the calculation response.
func (r *Repository) Record(kind string, companyID *int64, request, result interface{}) {
	reqJSON, err := json.Marshal(request)
	if err != nil {
		r.log.Error().Err(err).Str("kind", kind).Msg("Failed to marshal run request")
		return
	}
	resJSON, err := json.Marshal(result)
	if err != nil {
		r.log.Error().Err(err).Str("kind", kind).Msg("Failed to marshal run result")
		return
	}

	query := `
		INSERT INTO calculation_runs (id, kind, company_id, request_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(
		query,
		uuid.NewString(),
		kind,
		companyID,
		string(reqJSON),
		string(resJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		r.log.Error().Err(err).Str("kind", kind).Msg("Failed to record calculation run")
	}
}

// GetAll returns runs ordered newest first, optionally filtered by kind
func (r *Repository) GetAll(kind string, limit int) ([]Run, error) {
	query := `
		SELECT id, kind, company_id, request_json, result_json, created_at
		FROM calculation_runs
	`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, run)
	}
	return result, rows.Err()
}

// GetByID returns a single run, or nil when not found
func (r *Repository) GetByID(id string) (*Run, error) {
	query := `
		SELECT id, kind, company_id, request_json, result_json, created_at
		FROM calculation_runs
		WHERE id = ?
	`
	row := r.db.QueryRow(query, id)

	var run Run
	var companyID sql.NullInt64
	var reqJSON, resJSON, createdAt string
	err := row.Scan(&run.ID, &run.Kind, &companyID, &reqJSON, &resJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if companyID.Valid {
		run.CompanyID = &companyID.Int64
	}
	run.Request = json.RawMessage(reqJSON)
	run.Result = json.RawMessage(resJSON)
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &run, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var companyID sql.NullInt64
	var reqJSON, resJSON, createdAt string
	if err := row.Scan(&run.ID, &run.Kind, &companyID, &reqJSON, &resJSON, &createdAt); err != nil {
		return run, fmt.Errorf("failed to scan run: %w", err)
	}
	if companyID.Valid {
		run.CompanyID = &companyID.Int64
	}
	run.Request = json.RawMessage(reqJSON)
	run.Result = json.RawMessage(resJSON)
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return run, nil
}
