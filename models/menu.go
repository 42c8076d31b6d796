package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays is the canonical day order used by the specials scheduler.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidWeekday reports whether day names one of the seven weekdays (case-insensitive).
func ValidWeekday(day string) bool {
	for _, w := range Weekdays {
		if strings.EqualFold(w, day) {
			return true
		}
	}
	return false
}

// PriceVariant is one priced option for items that don't have a single price
// (e.g. short stack / full stack).
type PriceVariant struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type MenuItem struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Price         float64        `json:"price"`
	PriceVariants []PriceVariant `json:"priceVariants,omitempty"`
	Popular       bool           `json:"popular,omitempty"`
	Featured      bool           `json:"featured,omitempty"`
	Available     *bool          `json:"available,omitempty"`
	Image         string         `json:"image,omitempty"`
}

// IsAvailable treats a missing available flag as true. Unavailable items stay
// in storage but are hidden from the public menu.
func (i MenuItem) IsAvailable() bool {
	return i.Available == nil || *i.Available
}

type MenuCategory struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Order       int        `json:"order"`
	Items       []MenuItem `json:"items"`
}

type DailySpecial struct {
	Day         string  `json:"day"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Active      *bool   `json:"active,omitempty"`
}

// IsActive treats a missing active flag as true.
func (s DailySpecial) IsActive() bool {
	return s.Active == nil || *s.Active
}

type Specials struct {
	Daily []DailySpecial `json:"daily"`
}

// MenuData is the single document holding the whole menu.
type MenuData struct {
	LastUpdated string         `json:"lastUpdated"`
	Categories  []MenuCategory `json:"categories"`
	Specials    Specials       `json:"specials"`
	Notices     []string       `json:"notices"`
}

// SpecialsData is the dedicated specials document. Older deployments kept
// specials inside the menu document; reads fall back there once and migrate.
type SpecialsData struct {
	Daily       []DailySpecial `json:"daily"`
	LastUpdated string         `json:"lastUpdated"`
}

// Stamp records the mutation time in the document itself.
func (m *MenuData) Stamp() { m.LastUpdated = time.Now().UTC().Format(time.RFC3339) }

func (s *SpecialsData) Stamp() { s.LastUpdated = time.Now().UTC().Format(time.RFC3339) }

// Validate enforces the document invariants before trusting a loaded menu or
// persisting a mutated one: ids present and unique, specials day-keyed.
func (m *MenuData) Validate() error {
	seenCat := make(map[string]bool, len(m.Categories))
	for _, cat := range m.Categories {
		if cat.ID == "" || cat.Name == "" {
			return fmt.Errorf("category %q missing id or name", cat.Name)
		}
		if seenCat[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seenCat[cat.ID] = true

		seenItem := make(map[string]bool, len(cat.Items))
		for _, item := range cat.Items {
			if item.ID == "" || item.Name == "" {
				return fmt.Errorf("item %q in category %q missing id or name", item.Name, cat.ID)
			}
			if seenItem[item.ID] {
				return fmt.Errorf("duplicate item id %q in category %q", item.ID, cat.ID)
			}
			seenItem[item.ID] = true
		}
	}
	return validateSpecials(m.Specials.Daily)
}

func (s *SpecialsData) Validate() error { return validateSpecials(s.Daily) }

func validateSpecials(daily []DailySpecial) error {
	seen := make(map[string]bool, len(daily))
	for _, sp := range daily {
		if !ValidWeekday(sp.Day) {
			return fmt.Errorf("invalid weekday %q", sp.Day)
		}
		key := strings.ToLower(sp.Day)
		if seen[key] {
			return fmt.Errorf("duplicate special for %s", sp.Day)
		}
		seen[key] = true
	}
	return nil
}
