// Package backup copies the catalog database aside before risky operations
// and restores it on demand, pruning old copies past the retention limit.
package backup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"discovery/internal/logging"
)

const filePrefix = "discovery_"

// Manager owns one backup directory for one database file.
type Manager struct {
	dbPath    string
	dir       string
	retention int
	logger    *slog.Logger
}

// Entry describes one backup on disk, newest first in listings.
type Entry struct {
	Path      string
	Reason    string
	CreatedAt time.Time
	SizeBytes int64
}

// NewManager builds a manager. A retention of 0 or less keeps every backup.
func NewManager(dbPath, dir string, retention int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{dbPath: dbPath, dir: dir, retention: retention, logger: logger}
}

// Create copies the database into the backup directory. The reason tag ends
// up in the filename so listings show why each backup was taken.
func (m *Manager) Create(reason string) (string, error) {
	if reason == "" {
		reason = "manual"
	}
	reason = sanitizeReason(reason)

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102_150405.000000000")
	stamp = strings.ReplaceAll(stamp, ".", "_")
	name := fmt.Sprintf("%s%s_%s.db", filePrefix, stamp, reason)
	target := filepath.Join(m.dir, name)

	if err := copyFile(m.dbPath, target); err != nil {
		return "", fmt.Errorf("copy database: %w", err)
	}

	if err := m.prune(); err != nil {
		return "", err
	}

	m.logger.Info("backup created",
		logging.String("path", target),
		logging.String("reason", reason))
	return target, nil
}

// List returns the backups newest first.
func (m *Manager) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var entries []Entry
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if dirEntry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".db") {
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat backup %s: %w", name, err)
		}
		entries = append(entries, Entry{
			Path:      filepath.Join(m.dir, name),
			Reason:    parseReason(name),
			CreatedAt: info.ModTime(),
			SizeBytes: info.Size(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		// Filenames embed a nanosecond stamp, so they break mtime ties.
		return entries[i].Path > entries[j].Path
	})
	return entries, nil
}

// Restore replaces the database with the given backup. The current database
// is backed up first so a bad restore is recoverable.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		if _, err := m.Create("pre_restore"); err != nil {
			return fmt.Errorf("snapshot before restore: %w", err)
		}
	}

	if err := copyFile(backupPath, m.dbPath); err != nil {
		return fmt.Errorf("restore database: %w", err)
	}
	m.logger.Info("database restored", logging.String("from", backupPath))
	return nil
}

// prune removes the oldest backups past the retention limit.
func (m *Manager) prune() error {
	if m.retention <= 0 {
		return nil
	}
	entries, err := m.List()
	if err != nil {
		return err
	}
	for _, entry := range entries[min(m.retention, len(entries)):] {
		if err := os.Remove(entry.Path); err != nil {
			return fmt.Errorf("prune backup: %w", err)
		}
		m.logger.Debug("old backup pruned", logging.String("path", entry.Path))
	}
	return nil
}

// sanitizeReason keeps the reason filesystem-safe.
func sanitizeReason(reason string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, reason)
}

// parseReason extracts the reason tag from a backup filename:
// discovery_<date>_<time>_<nanos>_<reason>.db.
func parseReason(name string) string {
	stem := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), ".db")
	parts := strings.SplitN(stem, "_", 4)
	if len(parts) < 4 {
		return "unknown"
	}
	return parts[3]
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dst)
}
