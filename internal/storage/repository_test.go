package storage

import (
	"path/filepath"
	"testing"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	return NewRepository(db)
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	if err := repo.Set("txm_user", `{"email":"a@b.com"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, ok, err := repo.Get("txm_user")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != `{"email":"a@b.com"}` {
		t.Errorf("Get = %q, %v", value, ok)
	}
}

func TestRepositoryGetAbsentKey(t *testing.T) {
	repo := newTestRepository(t)

	_, ok, err := repo.Get("missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("absent key reported as present")
	}
}

func TestRepositorySetOverwrites(t *testing.T) {
	repo := newTestRepository(t)

	if err := repo.Set("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Set("k", "v2"); err != nil {
		t.Fatal(err)
	}

	value, ok, _ := repo.Get("k")
	if !ok || value != "v2" {
		t.Errorf("Get = %q, %v, want v2", value, ok)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := newTestRepository(t)

	if err := repo.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := repo.Get("k"); ok {
		t.Error("key still present after delete")
	}

	// Deleting an absent key is not an error.
	if err := repo.Delete("k"); err != nil {
		t.Errorf("double delete: %v", err)
	}
}
