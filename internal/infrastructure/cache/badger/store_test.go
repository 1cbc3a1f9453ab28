package badger

import (
	"context"
	"testing"
)

func TestStorePutGet(t *testing.T) {
	store, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "https://a/x.pdf"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, "https://a/x.pdf", "plan text"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	text, ok, err := store.Get(ctx, "https://a/x.pdf")
	if err != nil || !ok || text != "plan text" {
		t.Fatalf("unexpected Get() = %q %v %v", text, ok, err)
	}
}

func TestStorePersistsOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	_ = store.Put(ctx, "u", "t")
	if err := store.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer reopened.Close()
	if text, ok, _ := reopened.Get(ctx, "u"); !ok || text != "t" {
		t.Fatalf("expected persisted value, got %q %v", text, ok)
	}
}
