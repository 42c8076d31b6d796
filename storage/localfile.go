package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileBackend maps each document to a JSON file under dir. Development
// fallback; writes go through a temp file and rename so readers never see a
// half-written document.
type LocalFileBackend struct {
	dir string
}

func NewLocalFileBackend(dir string) (*LocalFileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileBackend{dir: dir}, nil
}

func (b *LocalFileBackend) path(typ DocType) string {
	return filepath.Join(b.dir, string(typ)+".json")
}

func (b *LocalFileBackend) Get(_ context.Context, typ DocType) ([]byte, error) {
	data, err := os.ReadFile(b.path(typ))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *LocalFileBackend) Set(_ context.Context, typ DocType, data []byte) error {
	tmp := b.path(typ) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path(typ))
}

func (b *LocalFileBackend) Delete(_ context.Context, typ DocType) error {
	err := os.Remove(b.path(typ))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (b *LocalFileBackend) Exists(_ context.Context, typ DocType) (bool, error) {
	_, err := os.Stat(b.path(typ))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LocalFileStore keeps uploaded images on disk and serves them under baseURL
// (the router exposes the directory as static files).
type LocalFileStore struct {
	dir     string
	baseURL string
}

func NewLocalFileStore(dir, baseURL string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalFileStore) Upload(_ context.Context, name, _ string, r io.Reader, _ int64) (string, error) {
	// Uploads use generated names, but flatten anyway so a crafted name can't
	// escape the directory.
	name = filepath.Base(strings.ReplaceAll(name, "/", "-"))
	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", err
	}
	return s.baseURL + "/" + name, nil
}

func (s *LocalFileStore) Delete(_ context.Context, url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" {
		return fmt.Errorf("invalid upload url %q", url)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
