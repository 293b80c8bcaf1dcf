package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stacker.json")
	if err := os.WriteFile(path, []byte(`{"version":1}`), 0600); err != nil {
		t.Fatalf("failed to write store file: %v", err)
	}
	return path
}

func TestCreate(t *testing.T) {
	storePath := setupStore(t)

	mgr := NewManager(storePath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if filepath.Dir(backupPath) != mgr.BackupDir() {
		t.Errorf("backup written outside the backup dir: %s", backupPath)
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, BackupFilePrefix) {
		t.Errorf("backup name missing prefix: %s", name)
	}
	if filepath.Ext(name) != ".json" {
		t.Errorf("backup should keep the store extension, got %s", name)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content differs from store: %s", data)
	}
}

func TestCreate_MissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected an error for a missing store file")
	}
}

func TestCreate_SameSecondGetsUniqueName(t *testing.T) {
	storePath := setupStore(t)
	mgr := NewManager(storePath)

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first == second {
		t.Errorf("two backups share a path: %s", first)
	}
}

func TestList(t *testing.T) {
	storePath := setupStore(t)
	mgr := NewManager(storePath)

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err = mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].Timestamp.Before(backups[1].Timestamp) {
		t.Error("backups not sorted newest first")
	}
}

func TestRestore(t *testing.T) {
	storePath := setupStore(t)
	mgr := NewManager(storePath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := os.WriteFile(storePath, []byte(`{"version":1,"changed":true}`), 0600); err != nil {
		t.Fatalf("failed to modify store: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("failed to read restored store: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("store not restored, got %s", data)
	}

	// Restore should have saved the pre-restore state as a new backup.
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected the pre-restore state to be backed up, got %d backups", len(backups))
	}
}

func TestRestore_MissingBackup(t *testing.T) {
	storePath := setupStore(t)
	mgr := NewManager(storePath)
	if err := mgr.Restore(filepath.Join(mgr.BackupDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing backup")
	}
}

func TestRotate(t *testing.T) {
	storePath := setupStore(t)
	mgr := NewManager(storePath)

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("rotation kept %d backups, max is %d", len(backups), MaxBackups)
	}
}
