package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"levelup/internal/period"
	"levelup/internal/storage"
)

// ExportPrefix names exported save files: <prefix><YYYY-MM-DD>.json.
const ExportPrefix = "solo-levelup-save-"

// encodeState is the one serialization used for both the stored slot and
// exports.
func encodeState(st *State) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// decodeState deep-merges doc onto the default state. Fields whose stored
// type no longer fits the state are reset to their defaults and listed in
// dropped; the rest of the document survives.
func decodeState(doc []byte) (*State, []string, error) {
	defaults, err := json.Marshal(DefaultState())
	if err != nil {
		return nil, nil, fmt.Errorf("encode defaults: %w", err)
	}
	merged, err := storage.MergeJSON(defaults, doc)
	if err != nil {
		return nil, nil, err
	}
	var (
		out     State
		dropped []string
	)
	if err := json.Unmarshal(merged, &out); err != nil {
		merged, dropped, err = storage.PruneJSON(defaults, merged, fitsState)
		if err != nil {
			return nil, nil, err
		}
		out = State{}
		if err := json.Unmarshal(merged, &out); err != nil {
			return nil, nil, fmt.Errorf("decode state: %w", err)
		}
	}
	out.normalize()
	return &out, dropped, nil
}

func fitsState(doc []byte) bool {
	var st State
	return json.Unmarshal(doc, &st) == nil
}

// loadLocked reads the slot. A missing, unreadable or malformed document
// yields the defaults; startup never fails on it. Whenever the stored
// document cannot be kept as is, it is backed up first so the first write
// after startup does not destroy it.
func (s *Service) loadLocked(ctx context.Context) (*State, bool) {
	raw, ok, err := s.kv.Get(ctx, s.slot)
	if err != nil {
		s.log.Warn("save unavailable, starting from defaults", zap.String("slot", s.slot), zap.Error(err))
		return DefaultState(), false
	}
	if !ok {
		return DefaultState(), false
	}
	st, dropped, err := decodeState(raw)
	if err != nil {
		s.log.Warn("save unreadable, starting from defaults", zap.String("slot", s.slot), zap.Error(err))
		s.backupLocked(ctx, "unreadable")
		return DefaultState(), false
	}
	if len(dropped) > 0 {
		s.log.Warn("save fields reset to defaults", zap.String("slot", s.slot), zap.Strings("fields", dropped))
		s.backupLocked(ctx, "repaired")
	}
	return st, true
}

// persistLocked writes the state through. Failures are logged only: the
// in-memory state stays authoritative for the session.
func (s *Service) persistLocked(ctx context.Context) {
	data, err := encodeState(s.st)
	if err != nil {
		s.log.Warn("persist skipped", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, s.slot, data); err != nil {
		s.log.Warn("persist failed", zap.String("slot", s.slot), zap.Error(err))
	}
}

// Export returns the file name and the exact bytes the store holds for the
// current state.
func (s *Service) Export() (string, []byte, error) {
	s.mu.Lock()
	data, err := encodeState(s.st)
	s.mu.Unlock()
	if err != nil {
		return "", nil, err
	}
	name := ExportPrefix + period.Today(s.clock) + ".json"
	s.dispatch([]Event{toast("Data exported successfully!", SeveritySuccess)})
	return name, data, nil
}

// Import replaces the state with doc merged onto the defaults. A document
// that does not parse leaves the state untouched and returns ImportError.
func (s *Service) Import(ctx context.Context, doc []byte) error {
	st, dropped, err := decodeState(doc)
	if err != nil {
		s.log.Warn("import rejected", zap.Error(err))
		s.dispatch([]Event{toast("Error importing data!", SeverityError)})
		return ImportError{Err: err}
	}
	if len(dropped) > 0 {
		s.log.Warn("import fields reset to defaults", zap.Strings("fields", dropped))
	}

	s.mu.Lock()
	s.backupLocked(ctx, "import")
	s.st = st
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.dispatch([]Event{toast("Data imported successfully!", SeveritySuccess)})
	return nil
}

// Reset replaces the state with a fresh default save.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.backupLocked(ctx, "reset")
	s.st = DefaultState()
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.dispatch([]Event{toast("All data has been reset.", SeverityWarning)})
}

// Restore brings back the save replaced by the latest import or reset. The
// backup is decoded before anything is committed, so a backup that cannot be
// read stays in place and the current save is untouched.
func (s *Service) Restore(ctx context.Context) error {
	b, ok := s.kv.(storage.Backuper)
	if !ok {
		return ErrNoBackups
	}

	s.mu.Lock()
	backup, err := b.LatestBackup(ctx, s.slot)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("restore: %w", err)
	}
	if backup == nil {
		s.mu.Unlock()
		return ErrNoBackups
	}
	st, _, err := decodeState(backup.Doc)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("restore backup %d: %w", backup.ID, err)
	}
	if err := b.RestoreBackup(ctx, s.slot, backup.ID); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("restore: %w", err)
	}
	s.st = st
	s.mu.Unlock()

	s.dispatch([]Event{toast("Previous save restored.", SeveritySuccess)})
	return nil
}

func (s *Service) backupLocked(ctx context.Context, reason string) {
	b, ok := s.kv.(storage.Backuper)
	if !ok {
		return
	}
	if _, err := b.Backup(ctx, s.slot, reason); err != nil {
		s.log.Warn("backup failed", zap.String("reason", reason), zap.Error(err))
	}
}
