// Package storage persists named JSON documents ("the menu", "the gallery")
// behind a uniform get/set/delete contract, plus raw image bytes behind a
// FileStore. Three document backends exist: a database table, an S3-compatible
// object store, and local JSON files for development.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
)

// DocType names one of the fixed documents.
type DocType string

const (
	DocMenu     DocType = "menu"
	DocSpecials DocType = "specials"
	DocGallery  DocType = "gallery"
	DocFeedback DocType = "feedback"
	DocUsers    DocType = "users"
	DocLikes    DocType = "likes"
)

// Backend is one storage implementation. Get returns (nil, nil) when the
// document does not exist. The object-store Set is delete-then-put, so a
// concurrent Get may transiently observe absence; callers treat a nil read as
// possibly transient rather than authoritative.
type Backend interface {
	Get(ctx context.Context, typ DocType) ([]byte, error)
	Set(ctx context.Context, typ DocType, data []byte) error
	Delete(ctx context.Context, typ DocType) error
	Exists(ctx context.Context, typ DocType) (bool, error)
}

// Validator is implemented by document roots that can check their own
// invariants. Documents validates on read before trusting a stored document
// and on write before persisting one.
type Validator interface {
	Validate() error
}

// Documents is the typed facade services talk to.
type Documents struct {
	backend Backend
}

func NewDocuments(b Backend) *Documents { return &Documents{backend: b} }

// Get unmarshals the named document into out and reports whether it existed.
// Read I/O errors are logged and reported as "not yet initialized" — the
// caller sees the same thing as a missing document.
func (d *Documents) Get(ctx context.Context, typ DocType, out any) (bool, error) {
	raw, err := d.backend.Get(ctx, typ)
	if err != nil {
		log.Printf("storage: read %s failed: %v", typ, err)
		return false, nil
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s document: %w", typ, err)
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return false, fmt.Errorf("stored %s document invalid: %w", typ, err)
		}
	}
	return true, nil
}

// Set validates and persists the whole document in one write.
func (d *Documents) Set(ctx context.Context, typ DocType, doc any) error {
	if v, ok := doc.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("refusing to persist invalid %s document: %w", typ, err)
		}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s document: %w", typ, err)
	}
	if err := d.backend.Set(ctx, typ, raw); err != nil {
		return fmt.Errorf("write %s document: %w", typ, err)
	}
	return nil
}

func (d *Documents) Delete(ctx context.Context, typ DocType) error {
	return d.backend.Delete(ctx, typ)
}

func (d *Documents) Exists(ctx context.Context, typ DocType) (bool, error) {
	return d.backend.Exists(ctx, typ)
}

// FileStore holds image bytes. Gallery metadata records point at the returned
// URLs; deleting a record best-effort deletes its file.
type FileStore interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (url string, err error)
	Delete(ctx context.Context, url string) error
}
