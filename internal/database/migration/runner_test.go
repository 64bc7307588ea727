package migration

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_OrdersAndSkipsUnrelated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V2__match_courses.sql", "SELECT 2;")
	writeFile(t, dir, "V1__init_schema.sql", "SELECT 1;")
	writeFile(t, dir, "README.md", "not a migration")

	migs, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].Name != "init_schema" {
		t.Fatalf("unexpected name %q", migs[0].Name)
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("expected distinct checksums")
	}
}

func TestLoad_RejectsDuplicateAndEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "V1__a.sql", "SELECT 1;")
	writeFile(t, dir, "V01__b.sql", "SELECT 1;")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected duplicate version error")
	}

	dir = t.TempDir()
	writeFile(t, dir, "V1__empty.sql", "   \n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestLoad_MissingDir(t *testing.T) {
	migs, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 0 {
		t.Fatalf("expected no migrations")
	}
}

func TestPending(t *testing.T) {
	migs := []Migration{{Version: 1}, {Version: 2}, {Version: 3}}
	got := Pending(migs, map[int64]string{1: "x", 3: "y"})
	if len(got) != 1 || got[0].Version != 2 {
		t.Fatalf("unexpected pending: %+v", got)
	}
}
