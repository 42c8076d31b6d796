package statemachine

import (
	"testing"

	"restaurant-site-api/models"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		f    models.Feedback
		want FeedbackStatus
	}{
		{"fresh", models.Feedback{}, StatusUnread},
		{"read", models.Feedback{Read: true}, StatusRead},
		{"replied", models.Feedback{Read: true, Replied: true}, StatusReplied},
		{"archived wins", models.Feedback{Read: true, Replied: true, Archived: true}, StatusArchived},
	}
	for _, tc := range cases {
		if got := StatusOf(tc.f); got != tc.want {
			t.Errorf("%s: StatusOf = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []Transition{
		{StatusUnread, StatusRead},
		{StatusUnread, StatusReplied},
		{StatusRead, StatusReplied},
		{StatusReplied, StatusReplied},
		{StatusUnread, StatusArchived},
		{StatusReplied, StatusArchived},
	}
	for _, tr := range allowed {
		if err := CanTransition(tr.From, tr.To); err != nil {
			t.Errorf("expected %s -> %s allowed, got %v", tr.From, tr.To, err)
		}
	}

	// Replying is irreversible; archived entries can't quietly come back
	denied := []Transition{
		{StatusReplied, StatusUnread},
		{StatusArchived, StatusRead},
		{StatusArchived, StatusReplied},
		{StatusRead, StatusUnread},
	}
	for _, tr := range denied {
		if err := CanTransition(tr.From, tr.To); err == nil {
			t.Errorf("expected %s -> %s denied", tr.From, tr.To)
		}
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(StatusUnread)
	want := map[FeedbackStatus]bool{StatusRead: true, StatusReplied: true, StatusArchived: true}
	if len(nexts) != len(want) {
		t.Fatalf("expected %d next states, got %v", len(want), nexts)
	}
	for _, n := range nexts {
		if !want[n] {
			t.Errorf("unexpected next state %q", n)
		}
	}
}
