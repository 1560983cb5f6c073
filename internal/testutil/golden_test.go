package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRepoRootHoldsGoMod(t *testing.T) {
	root := RepoRoot(t)
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("expected go.mod in %s: %v", root, err)
	}
}

func TestTempDBIsFresh(t *testing.T) {
	path := TempDB(t)
	if filepath.Base(path) != "progress.db" {
		t.Fatalf("expected progress.db, got %s", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s not to exist yet, got %v", path, err)
	}
}
