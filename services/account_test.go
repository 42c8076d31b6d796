package services

import (
	"context"
	"errors"
	"testing"

	"restaurant-site-api/models"
	"restaurant-site-api/storage"
)

type captureMailer struct {
	email string
	link  string
}

func (m *captureMailer) SendMagicLink(email, link string) error {
	m.email = email
	m.link = link
	return nil
}

func newTestAccountService(t *testing.T) (*AccountService, *captureMailer) {
	t.Helper()
	backend, err := storage.NewLocalFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("could not create backend: %v", err)
	}
	mailer := &captureMailer{}
	return NewAccountService(storage.NewDocuments(backend), mailer), mailer
}

func TestSendMagicLinkGoesToTheMailer(t *testing.T) {
	svc, mailer := newTestAccountService(t)

	if err := svc.SendMagicLink("guest@example.com", "http://x/verify?token=abc"); err != nil {
		t.Fatalf("SendMagicLink failed: %v", err)
	}
	if mailer.email != "guest@example.com" || mailer.link == "" {
		t.Errorf("expected mailer call, got %q %q", mailer.email, mailer.link)
	}
}

func TestUpsertUserCreatesThenReuses(t *testing.T) {
	svc, _ := newTestAccountService(t)
	ctx := context.Background()

	// Given: a first login creates the profile
	first, err := svc.UpsertUser(ctx, "guest@example.com", "Guest")
	if err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if first.ID == "" || first.UnsubscribeToken == "" {
		t.Fatalf("expected id and unsubscribe token, got %+v", first)
	}
	if !first.Preferences.DailySpecials {
		t.Error("expected default preferences enabled")
	}

	// When: the same email logs in again with a new name
	second, err := svc.UpsertUser(ctx, "guest@example.com", "Guest Renamed")
	if err != nil {
		t.Fatalf("second UpsertUser failed: %v", err)
	}

	// Then: same profile, updated name
	if second.ID != first.ID {
		t.Errorf("expected stable id, got %q then %q", first.ID, second.ID)
	}
	if second.Name != "Guest Renamed" {
		t.Errorf("expected updated name, got %q", second.Name)
	}
}

func TestToggleLikeFlips(t *testing.T) {
	svc, _ := newTestAccountService(t)
	ctx := context.Background()

	liked, err := svc.ToggleLike(ctx, "u1", "Guest", "pancakes", "breakfast")
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !liked {
		t.Error("expected first toggle to like")
	}

	counts, userLikes, err := svc.LikeCounts(ctx, "", "u1")
	if err != nil {
		t.Fatalf("LikeCounts failed: %v", err)
	}
	if counts["pancakes"] != 1 {
		t.Errorf("expected 1 like, got %d", counts["pancakes"])
	}
	if len(userLikes) != 1 || userLikes[0] != "pancakes" {
		t.Errorf("expected user likes [pancakes], got %v", userLikes)
	}

	liked, err = svc.ToggleLike(ctx, "u1", "Guest", "pancakes", "breakfast")
	if err != nil {
		t.Fatalf("second ToggleLike failed: %v", err)
	}
	if liked {
		t.Error("expected second toggle to unlike")
	}
	counts, _, err = svc.LikeCounts(ctx, "", "u1")
	if err != nil {
		t.Fatalf("LikeCounts failed: %v", err)
	}
	if counts["pancakes"] != 0 {
		t.Errorf("expected 0 likes after unlike, got %d", counts["pancakes"])
	}
}

func TestUnsubscribeZeroesPreferences(t *testing.T) {
	svc, _ := newTestAccountService(t)
	ctx := context.Background()

	user, err := svc.UpsertUser(ctx, "guest@example.com", "Guest")
	if err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	if err := svc.Unsubscribe(ctx, user.UnsubscribeToken); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	prefs, err := svc.GetPreferences(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if prefs != (models.NotificationPreferences{}) {
		t.Errorf("expected all preferences off, got %+v", prefs)
	}
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	svc, _ := newTestAccountService(t)

	err := svc.Unsubscribe(context.Background(), "bogus")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPreferencesUnknownUser(t *testing.T) {
	svc, _ := newTestAccountService(t)

	_, err := svc.GetPreferences(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
