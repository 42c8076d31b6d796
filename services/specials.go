package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-site-api/models"
	"restaurant-site-api/storage"
)

// SpecialsService keeps one special per weekday in a dedicated document.
// Deployments that predate that document stored specials inside the menu;
// the first read copies those over and the legacy location is never written
// again.
type SpecialsService struct {
	docs *storage.Documents
}

func NewSpecialsService(docs *storage.Documents) *SpecialsService {
	return &SpecialsService{docs: docs}
}

// SpecialUpdate is a partial update for one day's special.
type SpecialUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Active      *bool    `json:"active"`
}

func (s *SpecialsService) List(ctx context.Context) ([]models.DailySpecial, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Daily, nil
}

// Add fails when the weekday (case-insensitive) already has a special.
func (s *SpecialsService) Add(ctx context.Context, sp models.DailySpecial) (models.DailySpecial, error) {
	if !models.ValidWeekday(sp.Day) {
		return models.DailySpecial{}, fmt.Errorf("%w: %q is not a weekday", ErrValidation, sp.Day)
	}
	data, err := s.load(ctx)
	if err != nil {
		return models.DailySpecial{}, err
	}
	if findSpecial(data.Daily, sp.Day) >= 0 {
		return models.DailySpecial{}, fmt.Errorf("%w (%s)", ErrDuplicateDay, sp.Day)
	}
	if sp.Active == nil {
		sp.Active = boolPtr(true)
	}
	data.Daily = append(data.Daily, sp)
	if err := s.save(ctx, data); err != nil {
		return models.DailySpecial{}, err
	}
	return sp, nil
}

func (s *SpecialsService) Update(ctx context.Context, day string, up SpecialUpdate) (models.DailySpecial, error) {
	data, err := s.load(ctx)
	if err != nil {
		return models.DailySpecial{}, err
	}
	idx := findSpecial(data.Daily, day)
	if idx < 0 {
		return models.DailySpecial{}, fmt.Errorf("%w: no special for %s", ErrNotFound, day)
	}
	sp := &data.Daily[idx]
	if up.Name != nil {
		sp.Name = *up.Name
	}
	if up.Description != nil {
		sp.Description = *up.Description
	}
	if up.Price != nil {
		sp.Price = *up.Price
	}
	if up.Active != nil {
		sp.Active = up.Active
	}
	if err := s.save(ctx, data); err != nil {
		return models.DailySpecial{}, err
	}
	return *sp, nil
}

// Delete is idempotent: removing a day with no special is a no-op.
func (s *SpecialsService) Delete(ctx context.Context, day string) error {
	data, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := data.Daily[:0]
	for _, sp := range data.Daily {
		if !strings.EqualFold(sp.Day, day) {
			kept = append(kept, sp)
		}
	}
	data.Daily = kept
	return s.save(ctx, data)
}

// ResolveToday maps now's weekday to its entry in specials, falling back to
// index 0 when nothing matches (including the empty list).
func ResolveToday(specials []models.DailySpecial, now time.Time) int {
	today := now.Weekday().String()
	for i, sp := range specials {
		if strings.EqualFold(sp.Day, today) {
			return i
		}
	}
	return 0
}

func (s *SpecialsService) load(ctx context.Context) (*models.SpecialsData, error) {
	var data models.SpecialsData
	found, err := s.docs.Get(ctx, storage.DocSpecials, &data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if found {
		return &data, nil
	}

	// One-time migration from the legacy menu.specials.daily location.
	var menu models.MenuData
	if found, err := s.docs.Get(ctx, storage.DocMenu, &menu); err == nil && found && len(menu.Specials.Daily) > 0 {
		data.Daily = menu.Specials.Daily
		if err := s.save(ctx, &data); err != nil {
			return nil, err
		}
		return &data, nil
	}

	data.Daily = []models.DailySpecial{}
	return &data, nil
}

func (s *SpecialsService) save(ctx context.Context, data *models.SpecialsData) error {
	data.Stamp()
	if err := data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.docs.Set(ctx, storage.DocSpecials, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func findSpecial(daily []models.DailySpecial, day string) int {
	for i, sp := range daily {
		if strings.EqualFold(sp.Day, day) {
			return i
		}
	}
	return -1
}
