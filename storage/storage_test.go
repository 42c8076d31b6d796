package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

// testDoc is a minimal document root with a validity switch.
type testDoc struct {
	Value string `json:"value"`
}

func (d *testDoc) Validate() error {
	if d.Value == "invalid" {
		return fmt.Errorf("value must not be %q", d.Value)
	}
	return nil
}

func runBackendContract(t *testing.T, backend Backend) {
	t.Helper()
	docs := NewDocuments(backend)
	ctx := context.Background()

	// Given: nothing stored
	var out testDoc
	found, err := docs.Get(ctx, DocMenu, &out)
	if err != nil {
		t.Fatalf("Get on empty store failed: %v", err)
	}
	if found {
		t.Error("expected missing document")
	}

	// When: writing then reading back
	if err := docs.Set(ctx, DocMenu, &testDoc{Value: "hello"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	found, err = docs.Get(ctx, DocMenu, &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || out.Value != "hello" {
		t.Errorf("expected round-trip value hello, got found=%v value=%q", found, out.Value)
	}

	exists, err := docs.Exists(ctx, DocMenu)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected document to exist")
	}

	// Documents are independent of one another
	found, err = docs.Get(ctx, DocGallery, &out)
	if err != nil {
		t.Fatalf("Get other doc failed: %v", err)
	}
	if found {
		t.Error("expected other document to be missing")
	}

	// Then: delete removes it and deleting again is a no-op
	if err := docs.Delete(ctx, DocMenu); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := docs.Delete(ctx, DocMenu); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	exists, err = docs.Exists(ctx, DocMenu)
	if err != nil {
		t.Fatalf("Exists after delete failed: %v", err)
	}
	if exists {
		t.Error("expected document gone after delete")
	}
}

func TestLocalFileBackendContract(t *testing.T) {
	backend, err := NewLocalFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("could not create backend: %v", err)
	}
	runBackendContract(t, backend)
}

func TestDatabaseBackendContract(t *testing.T) {
	backend, err := NewDatabaseBackend(":memory:")
	if err != nil {
		t.Fatalf("could not open database: %v", err)
	}
	runBackendContract(t, backend)
}

func TestSetRefusesInvalidDocument(t *testing.T) {
	backend, err := NewLocalFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("could not create backend: %v", err)
	}
	docs := NewDocuments(backend)

	err = docs.Set(context.Background(), DocMenu, &testDoc{Value: "invalid"})
	if err == nil || !strings.Contains(err.Error(), "refusing to persist") {
		t.Errorf("expected validation refusal, got %v", err)
	}
}

func TestGetRejectsStoredInvalidDocument(t *testing.T) {
	backend, err := NewLocalFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("could not create backend: %v", err)
	}
	ctx := context.Background()

	// Given: corrupt-but-parseable content written straight to the backend
	if err := backend.Set(ctx, DocMenu, []byte(`{"value":"invalid"}`)); err != nil {
		t.Fatalf("raw Set failed: %v", err)
	}

	var out testDoc
	_, err = NewDocuments(backend).Get(ctx, DocMenu, &out)
	if err == nil {
		t.Error("expected error for stored invalid document")
	}
}

func TestLocalFileStoreUploadAndDelete(t *testing.T) {
	store, err := NewLocalFileStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}
	ctx := context.Background()

	url, err := store.Upload(ctx, "gallery/123-photo.jpg", "image/jpeg", bytes.NewReader([]byte("bytes")), 5)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("expected url under /uploads, got %q", url)
	}
	if strings.Contains(strings.TrimPrefix(url, "/uploads/"), "/") {
		t.Errorf("expected flattened name, got %q", url)
	}

	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Deleting an already-removed file is fine
	if err := store.Delete(ctx, url); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}
