package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// BackupVersion is written into every export and accepted on import.
const BackupVersion = "1.0"

// ErrInvalidImport is returned when a backup file fails validation. Nothing
// is written to the store in that case.
var ErrInvalidImport = errors.New("invalid backup file")

// Backup is the full exported snapshot of user data.
type Backup struct {
	Version         string                  `json:"version"`
	ExportDate      string                  `json:"exportDate"`
	User            *UserProfile            `json:"user"`
	QuestionHistory map[int]*QuestionRecord `json:"questionHistory"`
	Stats           *AggregateStats         `json:"stats"`
}

// backupSchema checks the presence and shape of the three top-level record
// documents before any key is touched.
var backupSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"user":            map[string]any{"type": "object"},
		"questionHistory": map[string]any{"type": "object"},
		"stats":           map[string]any{"type": "object"},
	},
	"required": []any{"user", "questionHistory", "stats"},
}

var (
	backupCompileOnce sync.Once
	backupCompiled    *jsonschema.Schema
	backupCompileErr  error
)

// Export assembles a full backup of the user profile, question history and
// aggregate stats.
func (s *Store) Export(ctx context.Context) *Backup {
	return &Backup{
		Version:         BackupVersion,
		ExportDate:      time.Now().UTC().Format(time.RFC3339),
		User:            s.User(ctx),
		QuestionHistory: s.QuestionHistory(ctx),
		Stats:           s.Stats(ctx),
	}
}

// Import validates raw backup JSON and, only if it passes, overwrites the
// user, question history and stats records in a single transaction.
func (s *Store) Import(ctx context.Context, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	compiled, err := compiledBackupSchema()
	if err != nil {
		return fmt.Errorf("compile backup schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	var backup Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	writes := []struct {
		key   string
		value any
	}{
		{keyUser, backup.User},
		{keyQuestionHistory, backup.QuestionHistory},
		{keyStats, backup.Stats},
	}
	for _, w := range writes {
		data, err := json.Marshal(w.value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", w.key, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			w.key, string(data))
		if err != nil {
			return fmt.Errorf("import %s: %w", w.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func compiledBackupSchema() (*jsonschema.Schema, error) {
	backupCompileOnce.Do(func() {
		defBytes, err := json.Marshal(backupSchema)
		if err != nil {
			backupCompileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			backupCompileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://backup.json", defParsed); err != nil {
			backupCompileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		backupCompiled, backupCompileErr = c.Compile("schema://backup.json")
	})
	return backupCompiled, backupCompileErr
}
