package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, retention int) (*Manager, string) {
	t.Helper()
	base := t.TempDir()
	dbPath := filepath.Join(base, "discovery.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("state-1"), 0o644))
	return NewManager(dbPath, filepath.Join(base, "backups"), retention, nil), dbPath
}

func TestCreateAndList(t *testing.T) {
	manager, _ := newManager(t, 10)

	path, err := manager.Create("manual")
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = manager.Create("pre_import")
	require.NoError(t, err)

	entries, err := manager.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "pre_import", entries[0].Reason)
	require.Equal(t, "manual", entries[1].Reason)
	require.Equal(t, int64(len("state-1")), entries[0].SizeBytes)
}

func TestRetentionPrunesOldest(t *testing.T) {
	manager, _ := newManager(t, 3)

	for range 5 {
		_, err := manager.Create("auto")
		require.NoError(t, err)
	}

	entries, err := manager.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestRestoreSnapshotsCurrentDatabase(t *testing.T) {
	manager, dbPath := newManager(t, 10)

	backupPath, err := manager.Create("manual")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(dbPath, []byte("state-2"), 0o644))
	require.NoError(t, manager.Restore(backupPath))

	restored, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	require.Equal(t, "state-1", string(restored))

	// The overwritten state was snapshotted before the restore.
	entries, err := manager.List()
	require.NoError(t, err)
	require.Equal(t, "pre_restore", entries[0].Reason)
}

func TestRestoreMissingBackup(t *testing.T) {
	manager, _ := newManager(t, 10)
	require.Error(t, manager.Restore(filepath.Join(t.TempDir(), "nope.db")))
}

func TestListEmptyDirIsNotAnError(t *testing.T) {
	manager, _ := newManager(t, 10)
	entries, err := manager.List()
	require.NoError(t, err)
	require.Empty(t, entries)
}
