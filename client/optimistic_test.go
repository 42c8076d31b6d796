package client

import (
	"fmt"
	"testing"

	"restaurant-site-api/models"
)

func sampleMenu() models.MenuData {
	return models.MenuData{Categories: []models.MenuCategory{{
		ID: "breakfast", Name: "Breakfast",
		Items: []models.MenuItem{{ID: "pancakes", Name: "Pancakes", Price: 9.99}},
	}}}
}

func TestApplyCommitsOptimistically(t *testing.T) {
	view := NewDocumentView(sampleMenu())

	var committed models.MenuData
	err := view.Apply(
		func(m *models.MenuData) { m.Categories[0].Items[0].Price = 11.99 },
		func(m models.MenuData) error { committed = m; return nil },
	)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if view.Current().Categories[0].Items[0].Price != 11.99 {
		t.Errorf("expected local copy updated, got %v", view.Current().Categories[0].Items[0].Price)
	}
	if committed.Categories[0].Items[0].Price != 11.99 {
		t.Errorf("expected commit to see the mutated document, got %v", committed.Categories[0].Items[0].Price)
	}
}

func TestApplyRollsBackOnCommitFailure(t *testing.T) {
	view := NewDocumentView(sampleMenu())

	// When: the mutation lands but the server rejects the commit
	err := view.Apply(
		func(m *models.MenuData) {
			m.Categories[0].Items[0].Price = 99.99
			m.Categories = append(m.Categories, models.MenuCategory{ID: "new", Name: "New"})
		},
		func(models.MenuData) error { return fmt.Errorf("server said no") },
	)

	// Then: the error surfaces and the local copy is back to the snapshot
	if err == nil {
		t.Fatal("expected commit error")
	}
	current := view.Current()
	if len(current.Categories) != 1 {
		t.Errorf("expected rollback to 1 category, got %d", len(current.Categories))
	}
	if current.Categories[0].Items[0].Price != 9.99 {
		t.Errorf("expected rollback to price 9.99, got %v", current.Categories[0].Items[0].Price)
	}
}

func TestSnapshotDetachesFromNestedSlices(t *testing.T) {
	view := NewDocumentView(sampleMenu())

	// A failed mutation that edits a nested slice in place must not leak
	// into the restored snapshot.
	_ = view.Apply(
		func(m *models.MenuData) { m.Categories[0].Items[0].Name = "Tampered" },
		func(models.MenuData) error { return fmt.Errorf("reject") },
	)
	if got := view.Current().Categories[0].Items[0].Name; got != "Pancakes" {
		t.Errorf("expected snapshot isolation, got %q", got)
	}
}

func TestReplaceDiscardsLocalState(t *testing.T) {
	view := NewDocumentView(sampleMenu())

	fresh := sampleMenu()
	fresh.Categories[0].Items[0].Price = 7.49
	view.Replace(fresh)
	if view.Current().Categories[0].Items[0].Price != 7.49 {
		t.Errorf("expected replaced document, got %v", view.Current().Categories[0].Items[0].Price)
	}
}
