package repository

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"rcfm/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrRecordNotFound is returned when a history row does not exist
var ErrRecordNotFound = errors.New("transfer record not found")

type Repository struct {
	db *sql.DB
}

func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_journal_mode=WAL&_timeout=5000&_cache_size=2000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db}

	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Ping checks that the database is reachable
func (r *Repository) Ping() error {
	return r.db.Ping()
}

func (r *Repository) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := r.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func (r *Repository) CreateTransferRecord(record *models.TransferRecord) error {
	query := `
		INSERT INTO transfers (job_id, name, operation, source, destination, total_size,
			bytes_transferred, success, error_message, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if record.FinishedAt.IsZero() {
		record.FinishedAt = time.Now()
	}
	if record.StartedAt.IsZero() {
		record.StartedAt = record.FinishedAt
	}

	var errorMessage sql.NullString
	if record.ErrorMessage != "" {
		errorMessage = sql.NullString{String: record.ErrorMessage, Valid: true}
	}

	result, err := r.db.Exec(query,
		record.JobID, record.Name, record.Operation, record.Source, record.Destination,
		record.TotalSize, record.BytesTransferred, record.Success, errorMessage,
		record.StartedAt, record.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to create transfer record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transfer record ID: %w", err)
	}
	record.ID = id

	return nil
}

const recordColumns = `id, job_id, name, operation, source, destination, total_size,
	bytes_transferred, success, error_message, started_at, finished_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*models.TransferRecord, error) {
	var record models.TransferRecord
	var errorMessage sql.NullString

	err := row.Scan(
		&record.ID, &record.JobID, &record.Name, &record.Operation, &record.Source,
		&record.Destination, &record.TotalSize, &record.BytesTransferred, &record.Success,
		&errorMessage, &record.StartedAt, &record.FinishedAt)
	if err != nil {
		return nil, err
	}

	if errorMessage.Valid {
		record.ErrorMessage = errorMessage.String
	}
	return &record, nil
}

func (r *Repository) GetTransferRecord(id int64) (*models.TransferRecord, error) {
	row := r.db.QueryRow("SELECT "+recordColumns+" FROM transfers WHERE id = ?", id)

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get transfer record: %w", err)
	}

	return record, nil
}

func (r *Repository) GetTransferRecords(filter models.HistoryFilter) ([]*models.TransferRecord, error) {
	query := "SELECT " + recordColumns + " FROM transfers"

	var conditions []string
	var args []interface{}

	if filter.Success != nil {
		conditions = append(conditions, "success = ?")
		args = append(args, *filter.Success)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY finished_at DESC, id DESC"

	// OFFSET needs a LIMIT in SQLite
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ?"
		args = append(args, limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer records: %w", err)
	}
	defer rows.Close()

	var records []*models.TransferRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer records: %w", err)
	}

	return records, nil
}

func (r *Repository) DeleteTransferRecord(id int64) error {
	result, err := r.db.Exec("DELETE FROM transfers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transfer record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrRecordNotFound, id)
	}

	return nil
}

func (r *Repository) GetHistorySummary() (*models.TransferSummary, error) {
	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as completed,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failed
		FROM transfers
	`

	var summary models.TransferSummary
	err := r.db.QueryRow(query).Scan(&summary.Total, &summary.Completed, &summary.Failed)
	if err != nil {
		return nil, fmt.Errorf("failed to get history summary: %w", err)
	}

	return &summary, nil
}
