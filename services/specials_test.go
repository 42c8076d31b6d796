package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-site-api/models"
	"restaurant-site-api/storage"
)

func newTestSpecialsService(t *testing.T) (*SpecialsService, *storage.Documents) {
	t.Helper()
	backend, err := storage.NewLocalFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("could not create backend: %v", err)
	}
	docs := storage.NewDocuments(backend)
	return NewSpecialsService(docs), docs
}

func TestAddSpecialRejectsDuplicateDayCaseInsensitive(t *testing.T) {
	svc, _ := newTestSpecialsService(t)
	ctx := context.Background()

	// Given: Monday already has a special
	if _, err := svc.Add(ctx, models.DailySpecial{Day: "Monday", Name: "Meatloaf", Price: 11.99}); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	// When: adding "monday" again with different casing
	_, err := svc.Add(ctx, models.DailySpecial{Day: "monday", Name: "Chili", Price: 9.99})

	// Then: the duplicate is rejected
	if !errors.Is(err, ErrDuplicateDay) {
		t.Errorf("expected ErrDuplicateDay, got %v", err)
	}
}

func TestAddSpecialRejectsInvalidWeekday(t *testing.T) {
	svc, _ := newTestSpecialsService(t)

	_, err := svc.Add(context.Background(), models.DailySpecial{Day: "Someday", Name: "X", Price: 1})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestAddSpecialDefaultsActive(t *testing.T) {
	svc, _ := newTestSpecialsService(t)

	sp, err := svc.Add(context.Background(), models.DailySpecial{Day: "Friday", Name: "Fish Fry", Price: 14.99})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !sp.IsActive() {
		t.Error("expected new special to be active by default")
	}
}

func TestDeleteSpecialIsIdempotent(t *testing.T) {
	svc, _ := newTestSpecialsService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, models.DailySpecial{Day: "Tuesday", Name: "Tacos", Price: 8.99}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Delete(ctx, "TUESDAY"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Deleting again must not error
	if err := svc.Delete(ctx, "Tuesday"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}

	specials, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(specials) != 0 {
		t.Errorf("expected no specials, got %d", len(specials))
	}
}

func TestUpdateSpecialNotFound(t *testing.T) {
	svc, _ := newTestSpecialsService(t)

	name := "New Name"
	_, err := svc.Update(context.Background(), "Sunday", SpecialUpdate{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSpecialsMigrateFromLegacyMenuDocument(t *testing.T) {
	svc, docs := newTestSpecialsService(t)
	ctx := context.Background()

	// Given: specials live inside the menu document, no dedicated document yet
	menu := &models.MenuData{
		Categories: []models.MenuCategory{},
		Specials: models.Specials{Daily: []models.DailySpecial{
			{Day: "Wednesday", Name: "Wings", Price: 10.99},
		}},
	}
	menu.Stamp()
	if err := docs.Set(ctx, storage.DocMenu, menu); err != nil {
		t.Fatalf("could not write menu: %v", err)
	}

	// When: listing specials for the first time
	specials, err := svc.List(ctx)

	// Then: the legacy entries come back and the dedicated document now exists
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(specials) != 1 || specials[0].Name != "Wings" {
		t.Fatalf("expected migrated Wings special, got %+v", specials)
	}
	exists, err := docs.Exists(ctx, storage.DocSpecials)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected dedicated specials document after migration")
	}
}

func TestResolveToday(t *testing.T) {
	specials := []models.DailySpecial{
		{Day: "Monday", Name: "A"},
		{Day: "Friday", Name: "B"},
	}
	// 2026-08-28 is a Friday
	friday := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	if idx := ResolveToday(specials, friday); idx != 1 {
		t.Errorf("expected index 1 on Friday, got %d", idx)
	}
	// No entry for Saturday, fall back to the first
	saturday := friday.Add(24 * time.Hour)
	if idx := ResolveToday(specials, saturday); idx != 0 {
		t.Errorf("expected fallback index 0, got %d", idx)
	}
	if idx := ResolveToday(nil, friday); idx != 0 {
		t.Errorf("expected 0 for empty list, got %d", idx)
	}
}

func TestListKeepsInactiveSpecials(t *testing.T) {
	svc, _ := newTestSpecialsService(t)
	ctx := context.Background()

	inactive := false
	if _, err := svc.Add(ctx, models.DailySpecial{Day: "Thursday", Name: "Soup", Price: 5.99, Active: &inactive}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	specials, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(specials) != 1 {
		t.Errorf("expected inactive special in admin list, got %d entries", len(specials))
	}
}
