package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SlotStore is a KV over the slots table, with backups.
type SlotStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSlotStore(db *sql.DB) *SlotStore {
	return &SlotStore{db: db, now: time.Now}
}

func (s *SlotStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT doc FROM slots WHERE key = ?`, key)
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("slot get: %w", err)
	}
	return doc, true, nil
}

func (s *SlotStore) Set(ctx context.Context, key string, value []byte) error {
	return upsertSlot(ctx, s.db, key, value, s.now())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertSlot(ctx context.Context, db execer, key string, value []byte, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO slots (key, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, key, value, at.UTC())
	if err != nil {
		return fmt.Errorf("slot upsert: %w", err)
	}
	return nil
}

// Backup copies the current document of key into slot_backups.
// It reports false when the slot is empty.
func (s *SlotStore) Backup(ctx context.Context, key string, reason string) (bool, error) {
	copied := false
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO slot_backups (key, doc, reason, created_at)
			SELECT key, doc, ?, ? FROM slots WHERE key = ?
		`, reason, s.now().UTC(), key)
		if err != nil {
			return fmt.Errorf("slot backup: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("slot backup rows: %w", err)
		}
		copied = n > 0
		return nil
	})
	return copied, err
}

// LatestBackup returns the newest backup of key, or nil when none exists.
func (s *SlotStore) LatestBackup(ctx context.Context, key string) (*Backup, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, key, doc, reason, created_at
		FROM slot_backups
		WHERE key = ?
		ORDER BY id DESC
		LIMIT 1
	`, key)
	var b Backup
	if err := row.Scan(&b.ID, &b.Key, &b.Doc, &b.Reason, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("slot backup latest: %w", err)
	}
	return &b, nil
}

// RestoreBackup writes backup id back into the slot and removes it from the
// backup list, in one transaction.
func (s *SlotStore) RestoreBackup(ctx context.Context, key string, id int64) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var doc []byte
		err := tx.QueryRowContext(ctx, `
			SELECT doc FROM slot_backups WHERE id = ? AND key = ?
		`, id, key).Scan(&doc)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBackupNotFound
			}
			return fmt.Errorf("slot backup get: %w", err)
		}
		if err := upsertSlot(ctx, tx, key, doc, s.now()); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM slot_backups WHERE id = ?`, id); err != nil {
			return fmt.Errorf("slot backup delete: %w", err)
		}
		return nil
	})
}

// ListBackups returns the backups of key, newest first.
func (s *SlotStore) ListBackups(ctx context.Context, key string) ([]Backup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, key, doc, reason, created_at
		FROM slot_backups
		WHERE key = ?
		ORDER BY id DESC
	`, key)
	if err != nil {
		return nil, fmt.Errorf("slot backup list: %w", err)
	}
	defer rows.Close()

	var out []Backup
	for rows.Next() {
		var b Backup
		if err := rows.Scan(&b.ID, &b.Key, &b.Doc, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("slot backup scan: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("slot backup rows: %w", err)
	}
	return out, nil
}
