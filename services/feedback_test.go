package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-site-api/models"
	"restaurant-site-api/storage"
)

func newTestFeedbackService(t *testing.T) *FeedbackService {
	t.Helper()
	backend, err := storage.NewLocalFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("could not create backend: %v", err)
	}
	return NewFeedbackService(storage.NewDocuments(backend))
}

func submitTestFeedback(t *testing.T, svc *FeedbackService, name string) string {
	t.Helper()
	id, err := svc.Submit(context.Background(), models.Feedback{
		Name:    name,
		Email:   name + "@example.com",
		Type:    models.FeedbackCompliment,
		Message: "Great pancakes",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return id
}

func TestSubmitIgnoresClientSetFlags(t *testing.T) {
	svc := newTestFeedbackService(t)
	ctx := context.Background()

	// Given: a submission that tries to arrive pre-read and pre-replied
	id, err := svc.Submit(ctx, models.Feedback{
		Name:         "Mallory",
		Email:        "mallory@example.com",
		Message:      "hi",
		Read:         true,
		Replied:      true,
		ReplyMessage: "fake",
		Archived:     true,
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// Then: the stored entry is a plain unread message
	all := true
	items, err := svc.List(ctx, FeedbackFilters{Archived: &all})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no archived items, got %d", len(items))
	}
	items, err = svc.List(ctx, FeedbackFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != id {
		t.Fatalf("expected the submitted entry, got %+v", items)
	}
	if items[0].Read || items[0].Replied || items[0].ReplyMessage != "" {
		t.Errorf("expected clean flags, got %+v", items[0])
	}
	if items[0].Type != models.FeedbackOther {
		t.Errorf("expected type defaulted to other, got %q", items[0].Type)
	}
}

func TestSubmitRejectsBadRating(t *testing.T) {
	svc := newTestFeedbackService(t)

	_, err := svc.Submit(context.Background(), models.Feedback{
		Name: "A", Email: "a@example.com", Message: "x", Rating: 6,
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestListHidesArchivedByDefault(t *testing.T) {
	svc := newTestFeedbackService(t)
	ctx := context.Background()

	keep := submitTestFeedback(t, svc, "keep")
	archive := submitTestFeedback(t, svc, "archive")
	if _, err := svc.Archive(ctx, archive); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	items, err := svc.List(ctx, FeedbackFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != keep {
		t.Errorf("expected only the unarchived entry, got %+v", items)
	}

	archived := true
	items, err = svc.List(ctx, FeedbackFilters{Archived: &archived})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != archive {
		t.Errorf("expected only the archived entry, got %+v", items)
	}
}

func TestReplySetsFlagsAndIsRepeatable(t *testing.T) {
	svc := newTestFeedbackService(t)
	ctx := context.Background()

	id := submitTestFeedback(t, svc, "customer")

	// When: replying
	first, err := svc.Reply(ctx, id, "Thanks for visiting!")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !first.Read || !first.Replied || first.RepliedAt == nil {
		t.Fatalf("expected read+replied with timestamp, got %+v", first)
	}

	// When: replying again with a new message
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Reply(ctx, id, "Updated reply")
	if err != nil {
		t.Fatalf("second Reply failed: %v", err)
	}

	// Then: the message and timestamp both move forward
	if second.ReplyMessage != "Updated reply" {
		t.Errorf("expected updated message, got %q", second.ReplyMessage)
	}
	if !second.RepliedAt.After(*first.RepliedAt) {
		t.Errorf("expected repliedAt to advance, got %v then %v", first.RepliedAt, second.RepliedAt)
	}
}

func TestReplyRequiresMessage(t *testing.T) {
	svc := newTestFeedbackService(t)

	id := submitTestFeedback(t, svc, "quiet")
	_, err := svc.Reply(context.Background(), id, "")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestDeleteFeedbackNotFound(t *testing.T) {
	svc := newTestFeedbackService(t)

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteFeedbackRemovesEntry(t *testing.T) {
	svc := newTestFeedbackService(t)
	ctx := context.Background()

	id := submitTestFeedback(t, svc, "gone")
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	items, err := svc.List(ctx, FeedbackFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty inbox, got %d", len(items))
	}
}
