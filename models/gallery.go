package models

import (
	"fmt"
	"time"
)

// GalleryCategory is the fixed set of sections the public gallery groups by.
type GalleryCategory string

const (
	GalleryFood     GalleryCategory = "food"
	GalleryInterior GalleryCategory = "interior"
	GalleryTeam     GalleryCategory = "team"
	GalleryExterior GalleryCategory = "exterior"
)

func ValidGalleryCategory(c GalleryCategory) bool {
	switch c {
	case GalleryFood, GalleryInterior, GalleryTeam, GalleryExterior:
		return true
	}
	return false
}

// GalleryImage is metadata only; the bytes live in the file store and the
// record just points at them.
type GalleryImage struct {
	ID        string          `json:"id"`
	URL       string          `json:"url"`
	Alt       string          `json:"alt"`
	Category  GalleryCategory `json:"category"`
	Order     float64         `json:"order"`
	CreatedAt time.Time       `json:"createdAt"`
}

type GalleryData struct {
	Images      []GalleryImage `json:"images"`
	LastUpdated string         `json:"lastUpdated"`
}

func (g *GalleryData) Stamp() { g.LastUpdated = time.Now().UTC().Format(time.RFC3339) }

func (g *GalleryData) Validate() error {
	seen := make(map[string]bool, len(g.Images))
	for _, img := range g.Images {
		if img.ID == "" || img.URL == "" {
			return fmt.Errorf("gallery image missing id or url")
		}
		if seen[img.ID] {
			return fmt.Errorf("duplicate gallery image id %q", img.ID)
		}
		seen[img.ID] = true
		if !ValidGalleryCategory(img.Category) {
			return fmt.Errorf("invalid gallery category %q", img.Category)
		}
	}
	return nil
}
