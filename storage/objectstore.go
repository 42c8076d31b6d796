package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStoreBackend keeps each document as a single JSON object under
// data/<type>.json. The store has no overwrite-by-path, so Set is
// delete-then-put: a Get issued between the two steps observes "not found".
// Document-level atomicity holds (readers see the old or the new document,
// never a mix), but absence during that window is transient.
type ObjectStoreBackend struct {
	client *minio.Client
	bucket string
}

type ObjectStoreOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewObjectStoreBackend(opts ObjectStoreOptions) (*ObjectStoreBackend, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}
	return &ObjectStoreBackend{client: client, bucket: opts.Bucket}, nil
}

func objectKey(typ DocType) string { return "data/" + string(typ) + ".json" }

// Get lists by prefix first, then fetches the object the listing returned.
func (b *ObjectStoreBackend) Get(ctx context.Context, typ DocType) ([]byte, error) {
	key, err := b.firstKey(ctx, objectKey(typ))
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, nil
	}
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			// Raced with a concurrent delete-then-put; report absent.
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (b *ObjectStoreBackend) Set(ctx context.Context, typ DocType, data []byte) error {
	if err := b.Delete(ctx, typ); err != nil {
		return err
	}
	_, err := b.client.PutObject(ctx, b.bucket, objectKey(typ),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

// Delete removes every object under the document's prefix.
func (b *ObjectStoreBackend) Delete(ctx context.Context, typ DocType) error {
	prefix := objectKey(typ)
	for info := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return info.Err
		}
		if err := b.client.RemoveObject(ctx, b.bucket, info.Key, minio.RemoveObjectOptions{}); err != nil {
			return err
		}
	}
	return nil
}

func (b *ObjectStoreBackend) Exists(ctx context.Context, typ DocType) (bool, error) {
	key, err := b.firstKey(ctx, objectKey(typ))
	if err != nil {
		return false, err
	}
	return key != "", nil
}

func (b *ObjectStoreBackend) firstKey(ctx context.Context, prefix string) (string, error) {
	for info := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if info.Err != nil {
			return "", info.Err
		}
		return info.Key, nil
	}
	return "", nil
}

// ObjectFileStore uploads gallery image bytes to the same bucket under their
// given names and returns public URLs.
type ObjectFileStore struct {
	client *minio.Client
	bucket string
}

func NewObjectFileStore(opts ObjectStoreOptions) (*ObjectFileStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}
	return &ObjectFileStore{client: client, bucket: opts.Bucket}, nil
}

func (s *ObjectFileStore) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return s.client.EndpointURL().String() + "/" + s.bucket + "/" + name, nil
}

func (s *ObjectFileStore) Delete(ctx context.Context, url string) error {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return fmt.Errorf("url %q is not in bucket %s", url, s.bucket)
	}
	key := url[idx+len(marker):]
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
