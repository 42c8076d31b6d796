package models

import (
	"fmt"
	"time"
)

// FeedbackType classifies a customer message.
type FeedbackType string

const (
	FeedbackCompliment FeedbackType = "compliment"
	FeedbackComplaint  FeedbackType = "complaint"
	FeedbackSuggestion FeedbackType = "suggestion"
	FeedbackQuestion   FeedbackType = "question"
	FeedbackOther      FeedbackType = "other"
)

func ValidFeedbackType(t FeedbackType) bool {
	switch t {
	case FeedbackCompliment, FeedbackComplaint, FeedbackSuggestion, FeedbackQuestion, FeedbackOther:
		return true
	}
	return false
}

type Feedback struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
	Type         FeedbackType `json:"type"`
	Message      string       `json:"message"`
	Rating       int          `json:"rating,omitempty"`
	VisitDate    string       `json:"visitDate,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	Read         bool         `json:"read"`
	Replied      bool         `json:"replied"`
	ReplyMessage string       `json:"replyMessage,omitempty"`
	RepliedAt    *time.Time   `json:"repliedAt,omitempty"`
	Archived     bool         `json:"archived"`
}

type FeedbackData struct {
	Items       []Feedback `json:"items"`
	LastUpdated string     `json:"lastUpdated"`
}

func (f *FeedbackData) Stamp() { f.LastUpdated = time.Now().UTC().Format(time.RFC3339) }

func (f *FeedbackData) Validate() error {
	seen := make(map[string]bool, len(f.Items))
	for _, item := range f.Items {
		if item.ID == "" {
			return fmt.Errorf("feedback entry missing id")
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate feedback id %q", item.ID)
		}
		seen[item.ID] = true
		if !ValidFeedbackType(item.Type) {
			return fmt.Errorf("invalid feedback type %q", item.Type)
		}
		if item.Rating < 0 || item.Rating > 5 {
			return fmt.Errorf("feedback rating %d out of range", item.Rating)
		}
	}
	return nil
}
