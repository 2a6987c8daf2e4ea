package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Laetus/mvv-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// FindProfile returns the profile for a chat id or ErrNotFound. The
// chat_id primary key guarantees at most one row per id.
func (r *SQLiteRepo) FindProfile(ctx context.Context, chatID int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, created_at, last_contact, msg_count,
		       home_lat, home_lon, pending_kind, pending_since
		FROM profiles
		WHERE chat_id = ?`,
		chatID,
	)

	var (
		chatIDOut    int64
		createdAt    int64
		lastContact  int64
		msgCount     int
		homeLat      sql.NullFloat64
		homeLon      sql.NullFloat64
		pendingKind  sql.NullString
		pendingSince sql.NullInt64
	)

	if err := row.Scan(
		&chatIDOut, &createdAt, &lastContact, &msgCount,
		&homeLat, &homeLon, &pendingKind, &pendingSince,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &domain.Profile{
		ChatID:      chatIDOut,
		Home:        homeFromNull(homeLat, homeLon),
		MsgCount:    msgCount,
		Pending:     pendingFromNull(pendingKind, pendingSince),
		LastContact: time.Unix(lastContact, 0).UTC(),
		CreatedAt:   time.Unix(createdAt, 0).UTC(),
	}, nil
}

// InsertProfile creates the row for a previously unseen chat id.
func (r *SQLiteRepo) InsertProfile(ctx context.Context, p *domain.Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}

	lat, lon := homeToNull(p.Home)
	kind, since := pendingToNull(p.Pending)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			chat_id, created_at, last_contact, msg_count,
			home_lat, home_lon, pending_kind, pending_since
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ChatID, p.CreatedAt.UTC().Unix(), p.LastContact.UTC().Unix(), p.MsgCount,
		lat, lon, kind, since,
	)
	return err
}

// ReplaceProfile overwrites all mutable fields of an existing profile
// (read-modify-write, not a differential update).
func (r *SQLiteRepo) ReplaceProfile(ctx context.Context, p *domain.Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}

	lat, lon := homeToNull(p.Home)
	kind, since := pendingToNull(p.Pending)

	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET last_contact = ?, msg_count = ?,
		    home_lat = ?, home_lon = ?,
		    pending_kind = ?, pending_since = ?
		WHERE chat_id = ?`,
		p.LastContact.UTC().Unix(), p.MsgCount,
		lat, lon, kind, since,
		p.ChatID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
