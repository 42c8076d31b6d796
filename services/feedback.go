package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"restaurant-site-api/models"
	"restaurant-site-api/statemachine"
	"restaurant-site-api/storage"
)

// FeedbackService is the append-mostly customer message inbox.
type FeedbackService struct {
	docs *storage.Documents
}

func NewFeedbackService(docs *storage.Documents) *FeedbackService {
	return &FeedbackService{docs: docs}
}

// FeedbackFilters narrows List. Nil archived means "hide archived", the
// default inbox view.
type FeedbackFilters struct {
	Archived *bool
	Read     *bool
	Type     models.FeedbackType
}

// Submit stores a new message and returns its id.
func (s *FeedbackService) Submit(ctx context.Context, f models.Feedback) (string, error) {
	if f.Type == "" {
		f.Type = models.FeedbackOther
	}
	if !models.ValidFeedbackType(f.Type) {
		return "", fmt.Errorf("%w: invalid feedback type %q", ErrValidation, f.Type)
	}
	if f.Rating < 0 || f.Rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	f.ID = uuid.NewString()
	f.CreatedAt = time.Now().UTC()
	f.Read = false
	f.Replied = false
	f.Archived = false
	f.ReplyMessage = ""
	f.RepliedAt = nil

	data, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	data.Items = append(data.Items, f)
	if err := s.save(ctx, data); err != nil {
		return "", err
	}
	return f.ID, nil
}

// List returns messages newest first.
func (s *FeedbackService) List(ctx context.Context, filters FeedbackFilters) ([]models.Feedback, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.Feedback, 0, len(data.Items))
	for _, f := range data.Items {
		if filters.Archived != nil {
			if f.Archived != *filters.Archived {
				continue
			}
		} else if f.Archived {
			continue
		}
		if filters.Read != nil && f.Read != *filters.Read {
			continue
		}
		if filters.Type != "" && f.Type != filters.Type {
			continue
		}
		items = append(items, f)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *FeedbackService) MarkRead(ctx context.Context, id string) (models.Feedback, error) {
	return s.transition(ctx, id, statemachine.StatusRead, func(f *models.Feedback) {
		f.Read = true
	})
}

// Reply is idempotent in effect; repliedAt moves to the latest call.
func (s *FeedbackService) Reply(ctx context.Context, id, message string) (models.Feedback, error) {
	if message == "" {
		return models.Feedback{}, fmt.Errorf("%w: reply message required", ErrValidation)
	}
	now := time.Now().UTC()
	return s.transition(ctx, id, statemachine.StatusReplied, func(f *models.Feedback) {
		f.Read = true
		f.Replied = true
		f.ReplyMessage = message
		f.RepliedAt = &now
	})
}

func (s *FeedbackService) Archive(ctx context.Context, id string) (models.Feedback, error) {
	return s.transition(ctx, id, statemachine.StatusArchived, func(f *models.Feedback) {
		f.Archived = true
	})
}

// Delete removes the entry for good.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	data, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := findFeedback(data.Items, id)
	if idx < 0 {
		return fmt.Errorf("%w: feedback %q", ErrNotFound, id)
	}
	data.Items = append(data.Items[:idx], data.Items[idx+1:]...)
	return s.save(ctx, data)
}

func (s *FeedbackService) transition(ctx context.Context, id string, to statemachine.FeedbackStatus, apply func(*models.Feedback)) (models.Feedback, error) {
	data, err := s.load(ctx)
	if err != nil {
		return models.Feedback{}, err
	}
	idx := findFeedback(data.Items, id)
	if idx < 0 {
		return models.Feedback{}, fmt.Errorf("%w: feedback %q", ErrNotFound, id)
	}
	f := &data.Items[idx]
	if err := statemachine.CanTransition(statemachine.StatusOf(*f), to); err != nil {
		return models.Feedback{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	apply(f)
	if err := s.save(ctx, data); err != nil {
		return models.Feedback{}, err
	}
	return *f, nil
}

func (s *FeedbackService) load(ctx context.Context) (*models.FeedbackData, error) {
	var data models.FeedbackData
	found, err := s.docs.Get(ctx, storage.DocFeedback, &data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !found {
		data.Items = []models.Feedback{}
	}
	return &data, nil
}

func (s *FeedbackService) save(ctx context.Context, data *models.FeedbackData) error {
	data.Stamp()
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.docs.Set(ctx, storage.DocFeedback, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func findFeedback(items []models.Feedback, id string) int {
	for i, f := range items {
		if f.ID == id {
			return i
		}
	}
	return -1
}
