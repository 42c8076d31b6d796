package services

import (
	"context"
	"errors"
	"testing"

	"restaurant-site-api/models"
	"restaurant-site-api/storage"
)

func TestGetMenuSeedsOnFirstRead(t *testing.T) {
	backend, err := storage.NewLocalFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("could not create backend: %v", err)
	}
	docs := storage.NewDocuments(backend)
	svc := NewMenuService(docs)
	ctx := context.Background()

	// When: reading the menu with nothing stored
	menu, err := svc.GetMenu(ctx, false)

	// Then: the bundled seed menu is returned and persisted
	if err != nil {
		t.Fatalf("GetMenu failed: %v", err)
	}
	if len(menu.Categories) == 0 {
		t.Fatal("expected seed categories")
	}
	exists, err := docs.Exists(ctx, storage.DocMenu)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected seeded menu to be persisted")
	}
}

func TestAddCategoryRejectsDuplicate(t *testing.T) {
	svc, _ := newTestMenuService(t)
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, models.MenuCategory{Name: "Desserts"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	_, err := svc.AddCategory(ctx, models.MenuCategory{Name: "Desserts"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for duplicate, got %v", err)
	}
}

func TestAddItemSlugsAndDefaultsAvailable(t *testing.T) {
	svc, _ := newTestMenuService(t)
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, models.MenuCategory{Name: "Sides"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	item, err := svc.AddItem(ctx, "sides", models.MenuItem{Name: "Onion Rings!", Price: 4.99})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if item.ID != "onion-rings" {
		t.Errorf("expected slug id onion-rings, got %q", item.ID)
	}
	if !item.IsAvailable() {
		t.Error("expected item available by default")
	}
}

func TestAddItemUnknownCategory(t *testing.T) {
	svc, _ := newTestMenuService(t)

	_, err := svc.AddItem(context.Background(), "nope", models.MenuItem{Name: "X", Price: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPublicViewHidesUnavailableItemsAndInactiveSpecials(t *testing.T) {
	svc, docs := newTestMenuService(t)
	ctx := context.Background()

	unavailable := false
	menu := &models.MenuData{Categories: []models.MenuCategory{{
		ID: "mains", Name: "Mains",
		Items: []models.MenuItem{
			{ID: "visible", Name: "Visible", Price: 10},
			{ID: "hidden", Name: "Hidden", Price: 12, Available: &unavailable},
		},
	}}}
	menu.Stamp()
	if err := docs.Set(ctx, storage.DocMenu, menu); err != nil {
		t.Fatalf("could not write menu: %v", err)
	}
	inactive := false
	sp := &models.SpecialsData{Daily: []models.DailySpecial{
		{Day: "Monday", Name: "On", Price: 9},
		{Day: "Tuesday", Name: "Off", Price: 9, Active: &inactive},
	}}
	sp.Stamp()
	if err := docs.Set(ctx, storage.DocSpecials, sp); err != nil {
		t.Fatalf("could not write specials: %v", err)
	}

	public, err := svc.GetMenu(ctx, true)
	if err != nil {
		t.Fatalf("GetMenu failed: %v", err)
	}
	if len(public.Categories[0].Items) != 1 || public.Categories[0].Items[0].ID != "visible" {
		t.Errorf("expected only the available item, got %+v", public.Categories[0].Items)
	}
	if len(public.Specials.Daily) != 1 || public.Specials.Daily[0].Name != "On" {
		t.Errorf("expected only the active special, got %+v", public.Specials.Daily)
	}

	// Storage keeps the full menu untouched
	full, err := svc.GetMenu(ctx, false)
	if err != nil {
		t.Fatalf("GetMenu failed: %v", err)
	}
	if len(full.Categories[0].Items) != 2 {
		t.Errorf("expected both items in admin view, got %d", len(full.Categories[0].Items))
	}
}

func TestDeleteCategoryIsIdempotent(t *testing.T) {
	svc, _ := newTestMenuService(t)
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, models.MenuCategory{Name: "Soups"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if err := svc.DeleteCategory(ctx, "soups"); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if err := svc.DeleteCategory(ctx, "soups"); err != nil {
		t.Fatalf("second DeleteCategory failed: %v", err)
	}
}

func TestUpdateItemPartialFields(t *testing.T) {
	svc, _ := newTestMenuService(t)
	ctx := context.Background()

	if _, err := svc.AddCategory(ctx, models.MenuCategory{Name: "Mains"}); err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, "mains", models.MenuItem{Name: "Meatloaf", Description: "Classic", Price: 11.99}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	price := 13.49
	item, err := svc.UpdateItem(ctx, "mains", "meatloaf", ItemUpdate{Price: &price})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if item.Price != 13.49 {
		t.Errorf("expected price 13.49, got %v", item.Price)
	}
	if item.Description != "Classic" {
		t.Errorf("expected untouched description, got %q", item.Description)
	}
}
