package services

import (
	"context"
	"fmt"

	"restaurant-site-api/models"
	"restaurant-site-api/seed"
	"restaurant-site-api/storage"
)

// MenuService owns the menu document: categories, items, and the public view.
type MenuService struct {
	docs *storage.Documents
}

func NewMenuService(docs *storage.Documents) *MenuService {
	return &MenuService{docs: docs}
}

// GetMenu returns the menu, seeding it from the bundled template on first
// read. When a dedicated specials document exists it supersedes the legacy
// specials embedded in the menu. publicView hides unavailable items and
// inactive specials without touching storage.
func (s *MenuService) GetMenu(ctx context.Context, publicView bool) (*models.MenuData, error) {
	menu, err := s.loadOrSeed(ctx)
	if err != nil {
		return nil, err
	}

	var sp models.SpecialsData
	if found, err := s.docs.Get(ctx, storage.DocSpecials, &sp); err == nil && found {
		menu.Specials.Daily = sp.Daily
	}

	if publicView {
		menu = publicMenuView(menu)
	}
	return menu, nil
}

// ReplaceMenu overwrites the whole document (category reordering from the
// admin console arrives as a full replacement).
func (s *MenuService) ReplaceMenu(ctx context.Context, menu *models.MenuData) (*models.MenuData, error) {
	for ci := range menu.Categories {
		cat := &menu.Categories[ci]
		if cat.ID == "" {
			cat.ID = models.Slugify(cat.Name)
		}
		for ii := range cat.Items {
			if cat.Items[ii].ID == "" {
				cat.Items[ii].ID = models.Slugify(cat.Items[ii].Name)
			}
		}
	}
	if err := s.save(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// CategoryUpdate is a field-level partial update; nil fields stay untouched.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
}

// ItemUpdate is a field-level partial update for one menu item.
type ItemUpdate struct {
	Name          *string                `json:"name"`
	Description   *string                `json:"description"`
	Price         *float64               `json:"price"`
	PriceVariants *[]models.PriceVariant `json:"priceVariants"`
	Popular       *bool                  `json:"popular"`
	Featured      *bool                  `json:"featured"`
	Available     *bool                  `json:"available"`
	Image         *string                `json:"image"`
}

// AddCategory appends a category; order is the current category count.
func (s *MenuService) AddCategory(ctx context.Context, cat models.MenuCategory) (models.MenuCategory, error) {
	menu, err := s.loadOrSeed(ctx)
	if err != nil {
		return models.MenuCategory{}, err
	}
	if cat.ID == "" {
		cat.ID = models.Slugify(cat.Name)
	}
	if idx := findCategory(menu, cat.ID); idx >= 0 {
		return models.MenuCategory{}, fmt.Errorf("%w: category %q already exists", ErrValidation, cat.ID)
	}
	cat.Order = len(menu.Categories)
	if cat.Items == nil {
		cat.Items = []models.MenuItem{}
	}
	menu.Categories = append(menu.Categories, cat)
	if err := s.save(ctx, menu); err != nil {
		return models.MenuCategory{}, err
	}
	return cat, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, id string, up CategoryUpdate) (models.MenuCategory, error) {
	menu, err := s.loadOrSeed(ctx)
	if err != nil {
		return models.MenuCategory{}, err
	}
	idx := findCategory(menu, id)
	if idx < 0 {
		return models.MenuCategory{}, fmt.Errorf("%w: category %q", ErrNotFound, id)
	}
	cat := &menu.Categories[idx]
	if up.Name != nil {
		cat.Name = *up.Name
	}
	if up.Description != nil {
		cat.Description = *up.Description
	}
	if up.Icon != nil {
		cat.Icon = *up.Icon
	}
	if up.Order != nil {
		cat.Order = *up.Order
	}
	if err := s.save(ctx, menu); err != nil {
		return models.MenuCategory{}, err
	}
	return *cat, nil
}

// DeleteCategory is idempotent: removing an absent category is a no-op.
func (s *MenuService) DeleteCategory(ctx context.Context, id string) error {
	menu, err := s.loadOrSeed(ctx)
	if err != nil {
		return err
	}
	kept := menu.Categories[:0]
	for _, cat := range menu.Categories {
		if cat.ID != id {
			kept = append(kept, cat)
		}
	}
	menu.Categories = kept
	return s.save(ctx, menu)
}

func (s *MenuService) AddItem(ctx context.Context, categoryID string, item models.MenuItem) (models.MenuItem, error) {
	menu, err := s.loadOrSeed(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	idx := findCategory(menu, categoryID)
	if idx < 0 {
		return models.MenuItem{}, fmt.Errorf("%w: category %q", ErrNotFound, categoryID)
	}
	if item.ID == "" {
		item.ID = models.Slugify(item.Name)
	}
	if item.Available == nil {
		item.Available = boolPtr(true)
	}
	for _, existing := range menu.Categories[idx].Items {
		if existing.ID == item.ID {
			return models.MenuItem{}, fmt.Errorf("%w: item %q already exists in category %q", ErrValidation, item.ID, categoryID)
		}
	}
	menu.Categories[idx].Items = append(menu.Categories[idx].Items, item)
	if err := s.save(ctx, menu); err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, categoryID, itemID string, up ItemUpdate) (models.MenuItem, error) {
	menu, err := s.loadOrSeed(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	ci := findCategory(menu, categoryID)
	if ci < 0 {
		return models.MenuItem{}, fmt.Errorf("%w: category %q", ErrNotFound, categoryID)
	}
	ii := findItem(menu.Categories[ci].Items, itemID)
	if ii < 0 {
		return models.MenuItem{}, fmt.Errorf("%w: item %q", ErrNotFound, itemID)
	}
	item := &menu.Categories[ci].Items[ii]
	if up.Name != nil {
		item.Name = *up.Name
	}
	if up.Description != nil {
		item.Description = *up.Description
	}
	if up.Price != nil {
		item.Price = *up.Price
	}
	if up.PriceVariants != nil {
		item.PriceVariants = *up.PriceVariants
	}
	if up.Popular != nil {
		item.Popular = *up.Popular
	}
	if up.Featured != nil {
		item.Featured = *up.Featured
	}
	if up.Available != nil {
		item.Available = up.Available
	}
	if up.Image != nil {
		item.Image = *up.Image
	}
	if err := s.save(ctx, menu); err != nil {
		return models.MenuItem{}, err
	}
	return *item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, categoryID, itemID string) error {
	menu, err := s.loadOrSeed(ctx)
	if err != nil {
		return err
	}
	ci := findCategory(menu, categoryID)
	if ci < 0 {
		return fmt.Errorf("%w: category %q", ErrNotFound, categoryID)
	}
	items := menu.Categories[ci].Items
	kept := items[:0]
	for _, item := range items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	menu.Categories[ci].Items = kept
	return s.save(ctx, menu)
}

func (s *MenuService) loadOrSeed(ctx context.Context) (*models.MenuData, error) {
	var menu models.MenuData
	found, err := s.docs.Get(ctx, storage.DocMenu, &menu)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if found {
		return &menu, nil
	}
	seeded, err := seed.Menu()
	if err != nil {
		return nil, fmt.Errorf("%w: load seed menu: %v", ErrStorage, err)
	}
	if err := s.save(ctx, seeded); err != nil {
		return nil, err
	}
	return seeded, nil
}

// loadExisting reads the stored menu without seeding; an absent document
// comes back as an empty menu.
func (s *MenuService) loadExisting(ctx context.Context) (*models.MenuData, error) {
	var menu models.MenuData
	found, err := s.docs.Get(ctx, storage.DocMenu, &menu)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !found {
		menu.Categories = []models.MenuCategory{}
	}
	return &menu, nil
}

func (s *MenuService) save(ctx context.Context, menu *models.MenuData) error {
	menu.Stamp()
	if err := menu.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.docs.Set(ctx, storage.DocMenu, menu); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// publicMenuView hides unavailable items and inactive specials. Records stay
// in storage untouched.
func publicMenuView(menu *models.MenuData) *models.MenuData {
	view := *menu
	view.Categories = make([]models.MenuCategory, 0, len(menu.Categories))
	for _, cat := range menu.Categories {
		visible := cat
		visible.Items = make([]models.MenuItem, 0, len(cat.Items))
		for _, item := range cat.Items {
			if item.IsAvailable() {
				visible.Items = append(visible.Items, item)
			}
		}
		view.Categories = append(view.Categories, visible)
	}
	view.Specials.Daily = make([]models.DailySpecial, 0, len(menu.Specials.Daily))
	for _, sp := range menu.Specials.Daily {
		if sp.IsActive() {
			view.Specials.Daily = append(view.Specials.Daily, sp)
		}
	}
	return &view
}

func findCategory(menu *models.MenuData, id string) int {
	for i, cat := range menu.Categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}

func findItem(items []models.MenuItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func boolPtr(b bool) *bool { return &b }
