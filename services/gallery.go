package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant-site-api/models"
	"restaurant-site-api/storage"
)

const maxUploadSize = 10 * 1024 * 1024

// validUploadTypes is the allow-list for gallery uploads.
var validUploadTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/avif": "avif",
}

// rotate re-uploads client-rotated bytes; avif rotation isn't supported by
// the admin UI so it stays off this list.
var validRotateTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// GalleryService manages image metadata records. Bytes live in the file
// store; the metadata document is the source of truth for what exists.
type GalleryService struct {
	docs  *storage.Documents
	files storage.FileStore
}

func NewGalleryService(docs *storage.Documents, files storage.FileStore) *GalleryService {
	return &GalleryService{docs: docs, files: files}
}

// GalleryUpload is one file in a batch.
type GalleryUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
	Alt         string
}

// GalleryImageUpdate is a field-level partial update.
type GalleryImageUpdate struct {
	Alt      *string                 `json:"alt"`
	Category *models.GalleryCategory `json:"category"`
	Order    *float64                `json:"order"`
}

// List returns images sorted by order, newest first within equal orders.
func (s *GalleryService) List(ctx context.Context) ([]models.GalleryImage, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	images := make([]models.GalleryImage, len(data.Images))
	copy(images, data.Images)
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Order != images[j].Order {
			return images[i].Order < images[j].Order
		}
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	return images, nil
}

// Upload validates the whole batch before moving any bytes, then uploads each
// file, skipping individual upload failures. All surviving records land in a
// single document write. Zero successes is an error.
func (s *GalleryService) Upload(ctx context.Context, uploads []GalleryUpload, category models.GalleryCategory) ([]models.GalleryImage, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files provided", ErrValidation)
	}
	if category == "" {
		category = models.GalleryInterior
	}
	if !models.ValidGalleryCategory(category) {
		return nil, fmt.Errorf("%w: invalid gallery category %q", ErrValidation, category)
	}
	for _, up := range uploads {
		if _, ok := validUploadTypes[up.ContentType]; !ok {
			return nil, fmt.Errorf("%w: invalid file type for %s, use JPEG, PNG, WebP, or AVIF", ErrValidation, up.Filename)
		}
		if up.Size > maxUploadSize {
			return nil, fmt.Errorf("%w: file %s too large, maximum size is 10MB", ErrValidation, up.Filename)
		}
	}

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// Next order is computed once so a mid-batch failure can't reorder the
	// files already queued.
	nextOrder := float64(-1)
	for _, img := range data.Images {
		if img.Order > nextOrder {
			nextOrder = img.Order
		}
	}

	var added []models.GalleryImage
	for i, up := range uploads {
		name := uploadName(up, i)
		url, err := s.files.Upload(ctx, name, up.ContentType, bytes.NewReader(up.Content), int64(len(up.Content)))
		if err != nil {
			log.Printf("gallery: upload %s failed: %v", up.Filename, err)
			continue
		}
		nextOrder++
		added = append(added, models.GalleryImage{
			ID:        uuid.NewString(),
			URL:       url,
			Alt:       altFor(up),
			Category:  category,
			Order:     nextOrder,
			CreatedAt: time.Now().UTC(),
		})
	}

	if len(added) == 0 {
		return nil, fmt.Errorf("%w: all uploads failed", ErrStorage)
	}

	data.Images = append(data.Images, added...)
	if err := s.save(ctx, data); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *GalleryService) Update(ctx context.Context, id string, up GalleryImageUpdate) (models.GalleryImage, error) {
	data, err := s.load(ctx)
	if err != nil {
		return models.GalleryImage{}, err
	}
	idx := findImage(data.Images, id)
	if idx < 0 {
		return models.GalleryImage{}, fmt.Errorf("%w: image %q", ErrNotFound, id)
	}
	img := &data.Images[idx]
	if up.Alt != nil {
		img.Alt = *up.Alt
	}
	if up.Category != nil {
		if !models.ValidGalleryCategory(*up.Category) {
			return models.GalleryImage{}, fmt.Errorf("%w: invalid gallery category %q", ErrValidation, *up.Category)
		}
		img.Category = *up.Category
	}
	if up.Order != nil {
		img.Order = *up.Order
	}
	if err := s.save(ctx, data); err != nil {
		return models.GalleryImage{}, err
	}
	return *img, nil
}

// Delete removes metadata records first, then best-effort deletes the
// underlying files. A failed file deletion is logged, never propagated:
// the listing must stop showing the image either way.
func (s *GalleryService) Delete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: image id(s) required", ErrValidation)
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	data, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	var removed []models.GalleryImage
	kept := data.Images[:0]
	for _, img := range data.Images {
		if wanted[img.ID] {
			removed = append(removed, img)
		} else {
			kept = append(kept, img)
		}
	}
	data.Images = kept

	if err := s.save(ctx, data); err != nil {
		return 0, err
	}

	for _, img := range removed {
		if err := s.files.Delete(ctx, img.URL); err != nil {
			log.Printf("gallery: delete blob %s failed: %v", img.URL, err)
		}
	}
	return len(removed), nil
}

// Rotate uploads the already-rotated bytes as a new file, repoints the
// record, then drops the old file. A failed metadata write triggers a
// compensating delete so the fresh upload doesn't leak.
func (s *GalleryService) Rotate(ctx context.Context, id string, up GalleryUpload) (models.GalleryImage, error) {
	ext, ok := validRotateTypes[up.ContentType]
	if !ok {
		return models.GalleryImage{}, fmt.Errorf("%w: invalid file type", ErrValidation)
	}

	data, err := s.load(ctx)
	if err != nil {
		return models.GalleryImage{}, err
	}
	idx := findImage(data.Images, id)
	if idx < 0 {
		return models.GalleryImage{}, fmt.Errorf("%w: image %q", ErrNotFound, id)
	}
	oldURL := data.Images[idx].URL

	name := fmt.Sprintf("gallery/%d-rotated-%s.%s", time.Now().UnixNano(), shortID(), ext)
	newURL, err := s.files.Upload(ctx, name, up.ContentType, bytes.NewReader(up.Content), int64(len(up.Content)))
	if err != nil {
		return models.GalleryImage{}, fmt.Errorf("%w: upload rotated image: %v", ErrStorage, err)
	}

	data.Images[idx].URL = newURL
	if err := s.save(ctx, data); err != nil {
		if cleanupErr := s.files.Delete(ctx, newURL); cleanupErr != nil {
			log.Printf("gallery: cleanup of %s after failed rotate failed: %v", newURL, cleanupErr)
		}
		return models.GalleryImage{}, err
	}

	if err := s.files.Delete(ctx, oldURL); err != nil {
		log.Printf("gallery: delete old blob %s failed: %v", oldURL, err)
	}
	return data.Images[idx], nil
}

func (s *GalleryService) load(ctx context.Context) (*models.GalleryData, error) {
	var data models.GalleryData
	found, err := s.docs.Get(ctx, storage.DocGallery, &data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !found {
		data.Images = []models.GalleryImage{}
	}
	return &data, nil
}

func (s *GalleryService) save(ctx context.Context, data *models.GalleryData) error {
	data.Stamp()
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.docs.Set(ctx, storage.DocGallery, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func uploadName(up GalleryUpload, i int) string {
	ext := strings.TrimPrefix(path.Ext(up.Filename), ".")
	if ext == "" {
		ext = validUploadTypes[up.ContentType]
	}
	return fmt.Sprintf("gallery/%d-%d-%s.%s", time.Now().UnixNano(), i, shortID(), ext)
}

// altFor falls back to a cleaned-up filename when no alt text was supplied.
func altFor(up GalleryUpload) string {
	if up.Alt != "" {
		return up.Alt
	}
	base := strings.TrimSuffix(up.Filename, path.Ext(up.Filename))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	if base == "" {
		return "Gallery image"
	}
	return base
}

func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func findImage(images []models.GalleryImage, id string) int {
	for i, img := range images {
		if img.ID == id {
			return i
		}
	}
	return -1
}
