package companies

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository handles company and statement persistence
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new company repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "companies").Logger(),
	}
}

// Create inserts a new company
func (r *Repository) Create(name string, industry *string) (*Company, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	result, err := r.db.Exec(
		`INSERT INTO companies (name, industry, created_at) VALUES (?, ?, ?)`,
		name, industry, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	company := &Company{ID: id, Name: name, Industry: industry}
	company.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return company, nil
}

// GetByID returns a company, or nil when not found
func (r *Repository) GetByID(id int64) (*Company, error) {
	row := r.db.QueryRow(`SELECT id, name, industry, created_at FROM companies WHERE id = ?`, id)

	var c Company
	var createdAt string
	err := row.Scan(&c.ID, &c.Name, &c.Industry, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &c, nil
}

// GetAll returns all companies ordered by name
func (r *Repository) GetAll() ([]Company, error) {
	rows, err := r.db.Query(`SELECT id, name, industry, created_at FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var result []Company
	for rows.Next() {
		var c Company
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, c)
	}
	return result, rows.Err()
}

// Delete removes a company and, via cascade, its statements
func (r *Repository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

// UpsertStatement stores a fiscal-year statement, replacing any existing one
// for the same year
func (r *Repository) UpsertStatement(companyID int64, fiscalYear int, data StatementData) (*Statement, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal statement data: %w", err)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	_, err = r.db.Exec(`
		INSERT INTO financial_statements (company_id, fiscal_year, data_json, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(company_id, fiscal_year) DO UPDATE SET data_json = excluded.data_json
	`, companyID, fiscalYear, string(dataJSON), createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert statement: %w", err)
	}

	return r.GetStatement(companyID, fiscalYear)
}

// GetStatement returns the statement for one fiscal year, or nil
func (r *Repository) GetStatement(companyID int64, fiscalYear int) (*Statement, error) {
	row := r.db.QueryRow(`
		SELECT id, company_id, fiscal_year, data_json, created_at
		FROM financial_statements
		WHERE company_id = ? AND fiscal_year = ?
	`, companyID, fiscalYear)
	return scanStatement(row)
}

// GetLatestStatement returns the most recent fiscal-year statement, or nil
func (r *Repository) GetLatestStatement(companyID int64) (*Statement, error) {
	row := r.db.QueryRow(`
		SELECT id, company_id, fiscal_year, data_json, created_at
		FROM financial_statements
		WHERE company_id = ?
		ORDER BY fiscal_year DESC
		LIMIT 1
	`, companyID)
	return scanStatement(row)
}

// GetStatements returns all statements for a company, newest first
func (r *Repository) GetStatements(companyID int64) ([]Statement, error) {
	rows, err := r.db.Query(`
		SELECT id, company_id, fiscal_year, data_json, created_at
		FROM financial_statements
		WHERE company_id = ?
		ORDER BY fiscal_year DESC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var result []Statement
	for rows.Next() {
		var s Statement
		var dataJSON, createdAt string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.FiscalYear, &dataJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		if err := json.Unmarshal([]byte(dataJSON), &s.Data); err != nil {
			return nil, fmt.Errorf("failed to decode statement data: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanStatement(row *sql.Row) (*Statement, error) {
	var s Statement
	var dataJSON, createdAt string
	err := row.Scan(&s.ID, &s.CompanyID, &s.FiscalYear, &dataJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statement: %w", err)
	}
	if err := json.Unmarshal([]byte(dataJSON), &s.Data); err != nil {
		return nil, fmt.Errorf("failed to decode statement data: %w", err)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &s, nil
}
