package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SnapshotRecord is one stored collection run.
type SnapshotRecord struct {
	ID            int64
	SnapshotID    string
	Hostname      string
	Platform      string
	RecordCount   int
	CollectedAt   time.Time
	StoredAt      time.Time
	InventoryJSON string
}

// ListFilter holds optional query parameters for listing snapshots.
type ListFilter struct {
	Hostname        string
	CollectedAfter  *time.Time
	CollectedBefore *time.Time
	PageSize        int
	Page            int
}

// Store persists inventory snapshots in SQLite.
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a snapshot and returns its row ID and stored_at time.
func (s *Store) Insert(ctx context.Context, rec *SnapshotRecord) (int64, time.Time, error) {
	storedAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (snapshot_id, hostname, platform, record_count, collected_at, stored_at, inventory_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SnapshotID,
		rec.Hostname,
		rec.Platform,
		rec.RecordCount,
		rec.CollectedAt.UTC().Format(timeLayout),
		storedAt.Format(timeLayout),
		rec.InventoryJSON,
	)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("insert snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("get last insert id: %w", err)
	}

	return id, storedAt, nil
}

const selectColumns = `SELECT id, snapshot_id, hostname, platform, record_count, collected_at, stored_at, inventory_json FROM snapshots`

// Get retrieves a snapshot by row ID.
func (s *Store) Get(ctx context.Context, id int64) (*SnapshotRecord, error) {
	return scanRecord(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
}

// GetLatestByHostname retrieves the most recent snapshot for a hostname.
func (s *Store) GetLatestByHostname(ctx context.Context, hostname string) (*SnapshotRecord, error) {
	return scanRecord(s.db.QueryRowContext(ctx,
		selectColumns+` WHERE hostname = ? ORDER BY collected_at DESC, id DESC LIMIT 1`, hostname))
}

// Delete removes a snapshot by row ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// List returns snapshot summaries matching f, newest first, and the total
// number of matches. InventoryJSON is left empty.
func (s *Store) List(ctx context.Context, f ListFilter) ([]SnapshotRecord, int, error) {
	where, args := buildWhere(f)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count snapshots: %w", err)
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	query := `SELECT id, snapshot_id, hostname, platform, record_count, collected_at, stored_at, ''
		FROM snapshots` + where + ` ORDER BY collected_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var records []SnapshotRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}

	return records, total, rows.Err()
}

// Purge deletes snapshots collected longer ago than olderThan.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(timeLayout)
	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE collected_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge snapshots: %w", err)
	}
	return result.RowsAffected()
}

func buildWhere(f ListFilter) (string, []any) {
	var conditions []string
	var args []any

	if f.Hostname != "" {
		conditions = append(conditions, "hostname = ?")
		args = append(args, f.Hostname)
	}
	if f.CollectedAfter != nil {
		conditions = append(conditions, "collected_at >= ?")
		args = append(args, f.CollectedAfter.UTC().Format(timeLayout))
	}
	if f.CollectedBefore != nil {
		conditions = append(conditions, "collected_at <= ?")
		args = append(args, f.CollectedBefore.UTC().Format(timeLayout))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*SnapshotRecord, error) {
	var rec SnapshotRecord
	var collectedAt, storedAt string
	err := row.Scan(&rec.ID, &rec.SnapshotID, &rec.Hostname, &rec.Platform, &rec.RecordCount, &collectedAt, &storedAt, &rec.InventoryJSON)
	if err != nil {
		return nil, err
	}

	rec.CollectedAt, _ = time.Parse(timeLayout, collectedAt)
	rec.StoredAt, _ = time.Parse(timeLayout, storedAt)

	return &rec, nil
}
