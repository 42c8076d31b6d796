package storage

import (
	"fmt"

	"restaurant-site-api/config"
)

// Open resolves the configured backend once at startup and returns the
// document facade plus the image file store. With the objectstore backend
// images go to the same bucket; otherwise they land on local disk.
func Open(cfg *config.Config) (*Documents, FileStore, error) {
	switch cfg.StorageBackend {
	case config.BackendDatabase:
		backend, err := NewDatabaseBackend(cfg.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database backend: %w", err)
		}
		files, err := NewLocalFileStore(cfg.UploadsDir, "/uploads")
		if err != nil {
			return nil, nil, err
		}
		return NewDocuments(backend), files, nil

	case config.BackendObjectStore:
		opts := ObjectStoreOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}
		backend, err := NewObjectStoreBackend(opts)
		if err != nil {
			return nil, nil, err
		}
		files, err := NewObjectFileStore(opts)
		if err != nil {
			return nil, nil, err
		}
		return NewDocuments(backend), files, nil

	case config.BackendLocalFile:
		backend, err := NewLocalFileBackend(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open localfile backend: %w", err)
		}
		files, err := NewLocalFileStore(cfg.UploadsDir, "/uploads")
		if err != nil {
			return nil, nil, err
		}
		return NewDocuments(backend), files, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
