package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTempDB(t *testing.T) (*SQLRepo, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "todos.db")
	repo, err := Open(context.Background(), DriverSQLite, dbPath)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
		_ = os.RemoveAll(dir)
	})
	return repo, dbPath
}

func TestSQLRepo_AddAndList(t *testing.T) {
	repo, _ := newTempDB(t)
	ctx := context.Background()

	if _, err := repo.Add(ctx, "  "); !errors.Is(err, ErrDescriptionRequired) {
		t.Fatalf("expected ErrDescriptionRequired, got %v", err)
	}

	a, err := repo.Add(ctx, "buy milk")
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	if a.ID <= 0 || a.Description != "buy milk" || a.Status {
		t.Fatalf("bad first todo: %+v", a)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(list))
	}
	if list[0] != a {
		t.Fatalf("expected %+v, got %+v", a, list[0])
	}
}

func TestSQLRepo_UniqueIDs(t *testing.T) {
	repo, _ := newTempDB(t)
	ctx := context.Background()

	a, err := repo.Add(ctx, "first")
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	b, err := repo.Add(ctx, "second")
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if b.ID <= a.ID {
		t.Fatalf("expected monotonic IDs: a=%d b=%d", a.ID, b.ID)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 2 || list[0].Description != "first" || list[1].Description != "second" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestSQLRepo_EmptyList(t *testing.T) {
	repo, _ := newTempDB(t)

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
}

func TestSQLRepo_OpenIsIdempotent(t *testing.T) {
	repo, path := newTempDB(t)
	ctx := context.Background()

	added, err := repo.Add(ctx, "survives reopen")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	_ = repo.Close()

	for i := 0; i < 2; i++ {
		again, err := Open(ctx, DriverSQLite, path)
		if err != nil {
			t.Fatalf("reopen %d: %v", i, err)
		}
		list, err := again.List(ctx)
		_ = again.Close()
		if err != nil {
			t.Fatalf("list after reopen %d: %v", i, err)
		}
		if len(list) != 1 || list[0] != added {
			t.Fatalf("reopen %d changed table contents: %+v", i, list)
		}
	}
}

func TestSQLRepo_UpdateToggle(t *testing.T) {
	repo, _ := newTempDB(t)
	ctx := context.Background()

	a, err := repo.Add(ctx, "water plants")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	done, err := repo.Update(ctx, a.ID, true)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Status || done.ID != a.ID || done.Description != a.Description {
		t.Fatalf("bad completed todo: %+v", done)
	}

	again, err := repo.Update(ctx, a.ID, true)
	if err != nil {
		t.Fatalf("complete twice: %v", err)
	}
	if !again.Status {
		t.Fatalf("expected status to stay true: %+v", again)
	}

	open, err := repo.Update(ctx, a.ID, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if open != a {
		t.Fatalf("expected %+v after reopen, got %+v", a, open)
	}
}

func TestSQLRepo_UpdateMissing(t *testing.T) {
	repo, _ := newTempDB(t)

	_, err := repo.Update(context.Background(), 999, true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLRepo_Delete(t *testing.T) {
	repo, _ := newTempDB(t)
	ctx := context.Background()

	a, err := repo.Add(ctx, "keep")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := repo.Add(ctx, "drop")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("second delete should be silent, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("expected only %d left, got %+v", a.ID, list)
	}

	if _, err := repo.Update(ctx, b.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on deleted id, got %v", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		dsn    string
	}{
		{name: "unknown driver", driver: "oracle", dsn: "whatever"},
		{name: "bad mysql dsn", driver: DriverMySQL, dsn: "mysql://not a dsn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := Open(context.Background(), tt.driver, tt.dsn)
			if !errors.Is(err, ErrConnection) {
				t.Fatalf("expected ErrConnection, got %v", err)
			}
			if repo != nil {
				t.Fatalf("expected nil repo on error")
			}
		})
	}
}

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(context.Background(), DriverMemory, "")
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*InMemoryRepo); !ok {
		t.Fatalf("expected *InMemoryRepo, got %T", store)
	}
}
