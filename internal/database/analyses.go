package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Analysis is a persisted invoice analysis. Result holds the full
// serialized engine output so the API can return it without recomputing.
type Analysis struct {
	ID               int             `json:"id"`
	RawText          string          `json:"raw_text"`
	IsCreditNote     bool            `json:"is_credit_note"`
	Result           json.RawMessage `json:"result"`
	ConfirmedJobRef  *int            `json:"confirmed_job_ref,omitempty"`
	ConfirmedAt      *time.Time      `json:"confirmed_at,omitempty"`
	LastReanalyzedAt *time.Time      `json:"last_reanalyzed_at,omitempty"`
	ReanalysisCount  int             `json:"reanalysis_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AnalysisStore handles database operations for analyses
type AnalysisStore struct {
	db *sql.DB
}

func NewAnalysisStore(db *sql.DB) *AnalysisStore {
	return &AnalysisStore{db: db}
}

const analysisColumns = `id, raw_text, is_credit_note, result_json,
		confirmed_job_ref, confirmed_at, last_reanalyzed_at, reanalysis_count, created_at`

func scanAnalysis(row interface{ Scan(...interface{}) error }) (Analysis, error) {
	var a Analysis
	var resultJSON string
	var confirmedRef sql.NullInt64
	var confirmedAt, reanalyzedAt sql.NullTime

	err := row.Scan(&a.ID, &a.RawText, &a.IsCreditNote, &resultJSON,
		&confirmedRef, &confirmedAt, &reanalyzedAt, &a.ReanalysisCount, &a.CreatedAt)
	if err != nil {
		return Analysis{}, err
	}

	a.Result = json.RawMessage(resultJSON)
	if confirmedRef.Valid {
		ref := int(confirmedRef.Int64)
		a.ConfirmedJobRef = &ref
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		a.ConfirmedAt = &t
	}
	if reanalyzedAt.Valid {
		t := reanalyzedAt.Time
		a.LastReanalyzedAt = &t
	}
	return a, nil
}

// GetAll returns all analyses, most recent first
func (s *AnalysisStore) GetAll() ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}

	return analyses, rows.Err()
}

// GetByID returns an analysis by ID
func (s *AnalysisStore) GetByID(id int) (*Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = ?`

	a, err := scanAnalysis(s.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// GetUnconfirmed returns analyses that have not been confirmed against a job
func (s *AnalysisStore) GetUnconfirmed(limit int) ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses
			  WHERE confirmed_job_ref IS NULL
			  ORDER BY created_at ASC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}

	return analyses, rows.Err()
}

// Create creates a new analysis
func (s *AnalysisStore) Create(analysis *Analysis) error {
	query := `INSERT INTO analyses (raw_text, is_credit_note, result_json)
			  VALUES (?, ?, ?)`

	result, err := s.db.Exec(query, analysis.RawText, analysis.IsCreditNote, string(analysis.Result))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	analysis.ID = int(id)

	created, err := s.GetByID(analysis.ID)
	if err != nil {
		return err
	}

	analysis.CreatedAt = created.CreatedAt
	return nil
}

// Confirm records the job reference an analysis was confirmed against
func (s *AnalysisStore) Confirm(id, jobRef int) error {
	result, err := s.db.Exec(`UPDATE analyses SET confirmed_job_ref = ?, confirmed_at = CURRENT_TIMESTAMP WHERE id = ?`,
		jobRef, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Reject clears a previous confirmation
func (s *AnalysisStore) Reject(id int) error {
	result, err := s.db.Exec(`UPDATE analyses SET confirmed_job_ref = NULL, confirmed_at = NULL WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UpdateResult replaces the stored engine output after a reanalysis run
func (s *AnalysisStore) UpdateResult(id int, resultJSON json.RawMessage) error {
	result, err := s.db.Exec(`UPDATE analyses SET result_json = ?,
			  last_reanalyzed_at = CURRENT_TIMESTAMP,
			  reanalysis_count = reanalysis_count + 1
			  WHERE id = ?`, string(resultJSON), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete deletes an analysis by ID
func (s *AnalysisStore) Delete(id int) error {
	result, err := s.db.Exec(`DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
