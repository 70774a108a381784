// Package sqlite provides a SQLite-backed session storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/basilisk/internal/crisis"
	sqlitemigrate "github.com/louisbranch/basilisk/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/basilisk/internal/storage"
	"github.com/louisbranch/basilisk/internal/storage/sqlite/migrations"
)

// Store persists crisis sessions in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func toNullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

func fromNullMillis(value sql.NullInt64) *time.Time {
	if !value.Valid {
		return nil
	}
	t := fromMillis(value.Int64)
	return &t
}

// Open opens a SQLite session store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutSession upserts a session record.
func (s *Store) PutSession(ctx context.Context, record storage.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("session id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (id, seed, mole, status, outcome, created_at, updated_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   status = excluded.status,
		   outcome = excluded.outcome,
		   updated_at = excluded.updated_at,
		   ended_at = excluded.ended_at`,
		record.ID,
		record.Seed,
		string(record.Mole),
		record.Status,
		record.Outcome,
		toMillis(record.CreatedAt),
		toMillis(record.UpdatedAt),
		toNullMillis(record.EndedAt),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// GetSession returns one session record.
func (s *Store) GetSession(ctx context.Context, id string) (storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SessionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SessionRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, seed, mole, status, outcome, created_at, updated_at, ended_at
		 FROM sessions WHERE id = ?`,
		id,
	)
	return scanSession(row)
}

// ListSessions returns all sessions, most recently updated first.
func (s *Store) ListSessions(ctx context.Context) ([]storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, seed, mole, status, outcome, created_at, updated_at, ended_at
		 FROM sessions ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []storage.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (storage.SessionRecord, error) {
	var (
		record               storage.SessionRecord
		mole                 string
		createdAt, updatedAt int64
		endedAt              sql.NullInt64
	)
	err := row.Scan(&record.ID, &record.Seed, &mole, &record.Status, &record.Outcome, &createdAt, &updatedAt, &endedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SessionRecord{}, storage.ErrNotFound
		}
		return storage.SessionRecord{}, fmt.Errorf("scan session: %w", err)
	}
	record.Mole = crisis.AdvisorName(mole)
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	record.EndedAt = fromNullMillis(endedAt)
	return record, nil
}

// PutSnapshot upserts the latest resumable state for a session.
func (s *Store) PutSnapshot(ctx context.Context, record storage.SnapshotRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(record.SessionID) == "" {
		return fmt.Errorf("session id is required")
	}

	suspicion, err := json.Marshal(record.Suspicion)
	if err != nil {
		return fmt.Errorf("encode suspicion: %w", err)
	}
	cables, err := json.Marshal(record.Cables)
	if err != nil {
		return fmt.Errorf("encode cables: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO snapshots (
		   session_id, turn, defcon, stability, system_status, intel,
		   corruption, weapon_progress, secrecy, band, hostile, suspicion,
		   mole_neutralized, cables, rng_state, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   turn = excluded.turn,
		   defcon = excluded.defcon,
		   stability = excluded.stability,
		   system_status = excluded.system_status,
		   intel = excluded.intel,
		   corruption = excluded.corruption,
		   weapon_progress = excluded.weapon_progress,
		   secrecy = excluded.secrecy,
		   band = excluded.band,
		   hostile = excluded.hostile,
		   suspicion = excluded.suspicion,
		   mole_neutralized = excluded.mole_neutralized,
		   cables = excluded.cables,
		   rng_state = excluded.rng_state,
		   updated_at = excluded.updated_at`,
		record.SessionID,
		record.Turn,
		record.Metrics.Defcon,
		record.Metrics.Stability,
		record.Metrics.SystemStatus,
		record.Metrics.Intel,
		record.Metrics.Corruption,
		record.Metrics.WeaponProgress,
		record.Metrics.Secrecy,
		int(record.Band),
		record.Hostile,
		string(suspicion),
		record.MoleNeutralized,
		string(cables),
		int64(record.RNGState),
		toMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the latest resumable state for a session.
func (s *Store) GetSnapshot(ctx context.Context, sessionID string) (storage.SnapshotRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SnapshotRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SnapshotRecord{}, fmt.Errorf("storage is not configured")
	}

	var (
		record           storage.SnapshotRecord
		band             int
		suspicion, blobs string
		rngState         int64
		updatedAt        int64
	)
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_id, turn, defcon, stability, system_status, intel,
		        corruption, weapon_progress, secrecy, band, hostile, suspicion,
		        mole_neutralized, cables, rng_state, updated_at
		 FROM snapshots WHERE session_id = ?`,
		sessionID,
	)
	err := row.Scan(
		&record.SessionID,
		&record.Turn,
		&record.Metrics.Defcon,
		&record.Metrics.Stability,
		&record.Metrics.SystemStatus,
		&record.Metrics.Intel,
		&record.Metrics.Corruption,
		&record.Metrics.WeaponProgress,
		&record.Metrics.Secrecy,
		&band,
		&record.Hostile,
		&suspicion,
		&record.MoleNeutralized,
		&blobs,
		&rngState,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SnapshotRecord{}, storage.ErrNotFound
		}
		return storage.SnapshotRecord{}, fmt.Errorf("scan snapshot: %w", err)
	}

	record.Metrics.Turn = record.Turn
	record.Band = crisis.Band(band)
	record.RNGState = uint64(rngState)
	record.UpdatedAt = fromMillis(updatedAt)
	if err := json.Unmarshal([]byte(suspicion), &record.Suspicion); err != nil {
		return storage.SnapshotRecord{}, fmt.Errorf("decode suspicion: %w", err)
	}
	if err := json.Unmarshal([]byte(blobs), &record.Cables); err != nil {
		return storage.SnapshotRecord{}, fmt.Errorf("decode cables: %w", err)
	}
	return record, nil
}

// AppendEvents appends resolution events to the session log in order.
func (s *Store) AppendEvents(ctx context.Context, sessionID string, turn int, events []crisis.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	if len(events) == 0 {
		return nil
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append events: %w", err)
	}

	var next int64
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM events WHERE session_id = ?`, sessionID)
	if err := row.Scan(&next); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("next event seq: %w", err)
	}

	now := toMillis(time.Now())
	for _, event := range events {
		next++
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO events (session_id, seq, turn, type, message, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, next, turn, string(event.Type), event.Message, now,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append events: %w", err)
	}
	return nil
}

// ListEvents returns the full event log for a session in append order.
func (s *Store) ListEvents(ctx context.Context, sessionID string) ([]storage.EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT session_id, seq, turn, type, message, created_at
		 FROM events WHERE session_id = ? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var records []storage.EventRecord
	for rows.Next() {
		var (
			record    storage.EventRecord
			createdAt int64
		)
		if err := rows.Scan(&record.SessionID, &record.Seq, &record.Turn, &record.Type, &record.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return records, nil
}

var _ storage.Store = (*Store)(nil)
