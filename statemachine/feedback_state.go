package statemachine

import (
	"errors"

	"restaurant-site-api/models"
)

// FeedbackStatus is the derived lifecycle position of one feedback entry.
type FeedbackStatus string

const (
	StatusUnread   FeedbackStatus = "unread"
	StatusRead     FeedbackStatus = "read"
	StatusReplied  FeedbackStatus = "replied"
	StatusArchived FeedbackStatus = "archived"
)

// Transition defines a valid state change in the inbox.
type Transition struct {
	From FeedbackStatus
	To   FeedbackStatus
}

// validTransitions is the authoritative state machine definition. Replied is
// irreversible; archiving is reachable from anywhere; deletion is a hard
// removal, not a state.
var validTransitions = []Transition{
	// First view marks the message read
	{From: StatusUnread, To: StatusRead},
	// Replying implies the message was read
	{From: StatusUnread, To: StatusReplied},
	{From: StatusRead, To: StatusReplied},
	// Re-sending the same reply is allowed; repliedAt moves forward
	{From: StatusReplied, To: StatusReplied},
	// Anything can be archived
	{From: StatusUnread, To: StatusArchived},
	{From: StatusRead, To: StatusArchived},
	{From: StatusReplied, To: StatusArchived},
	{From: StatusArchived, To: StatusArchived},
	// No-op re-reads are fine
	{From: StatusRead, To: StatusRead},
	{From: StatusReplied, To: StatusRead},
}

type transitionKey struct {
	From FeedbackStatus
	To   FeedbackStatus
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// StatusOf derives the lifecycle position from the entry's flags.
func StatusOf(f models.Feedback) FeedbackStatus {
	switch {
	case f.Archived:
		return StatusArchived
	case f.Replied:
		return StatusReplied
	case f.Read:
		return StatusRead
	}
	return StatusUnread
}

// CanTransition checks whether the inbox allows moving from one state to
// another.
func CanTransition(from, to FeedbackStatus) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New("invalid transition: " + string(from) + " -> " + string(to))
}

// ValidTransitionsFrom returns all reachable next states from a given state.
func ValidTransitionsFrom(status FeedbackStatus) []FeedbackStatus {
	var nexts []FeedbackStatus
	seen := map[FeedbackStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}
