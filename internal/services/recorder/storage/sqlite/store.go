// Package sqlite provides SQLite-backed persistence for the recorder.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/orbnet/internal/orb"
	"github.com/louisbranch/orbnet/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/orbnet/internal/services/recorder/storage"
	"github.com/louisbranch/orbnet/internal/services/recorder/storage/sqlite/migrations"
)

// Store provides SQLite-backed persistence for archived dataset records.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.RecordStore = (*Store)(nil)

// Open opens a recorder SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// InsertRecords archives a batch of records for one dataset. Rows that
// already exist are ignored, so replayed history is harmless; the returned
// count covers only newly inserted rows.
func (s *Store) InsertRecords(ctx context.Context, dataset orb.Dataset, records []orb.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO dataset_records (dataset, timestamp, orb_id, payload, recorded_at)
VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	recordedAt := time.Now().UTC().UnixMilli()
	inserted := 0
	for i, record := range records {
		timestamp, ok := record.Timestamp()
		if !ok {
			_ = tx.Rollback()
			return 0, fmt.Errorf("record %d has no numeric timestamp", i)
		}
		payload, err := json.Marshal(record)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("encode record %d: %w", i, err)
		}
		result, err := stmt.ExecContext(ctx, dataset.Key(), timestamp, record.OrbID(), string(payload), recordedAt)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("count inserted rows: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert transaction: %w", err)
	}
	return inserted, nil
}

// LatestTimestamp returns the newest archived timestamp for a dataset.
func (s *Store) LatestTimestamp(ctx context.Context, dataset orb.Dataset) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var latest sql.NullInt64
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT MAX(timestamp) FROM dataset_records WHERE dataset = ?",
		dataset.Key(),
	).Scan(&latest)
	if err != nil {
		return 0, fmt.Errorf("query latest timestamp: %w", err)
	}
	if !latest.Valid {
		return 0, storage.ErrNotFound
	}
	return latest.Int64, nil
}

// CountRecords returns the number of archived rows for a dataset.
func (s *Store) CountRecords(ctx context.Context, dataset orb.Dataset) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM dataset_records WHERE dataset = ?",
		dataset.Key(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("query record count: %w", err)
	}
	return count, nil
}
