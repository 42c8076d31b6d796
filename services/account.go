package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"restaurant-site-api/models"
	"restaurant-site-api/storage"
)

// Mailer delivers account emails. Actual delivery belongs to an external
// provider; the default implementation just logs the link.
type Mailer interface {
	SendMagicLink(email, link string) error
}

// AccountService backs the passwordless login collaborators: user profiles,
// notification preferences, likes, and the unsubscribe flow.
type AccountService struct {
	docs   *storage.Documents
	mailer Mailer
}

func NewAccountService(docs *storage.Documents, mailer Mailer) *AccountService {
	return &AccountService{docs: docs, mailer: mailer}
}

// SendMagicLink hands the login link to the mailer.
func (s *AccountService) SendMagicLink(email, link string) error {
	if err := s.mailer.SendMagicLink(email, link); err != nil {
		return fmt.Errorf("%w: send magic link: %v", ErrStorage, err)
	}
	return nil
}

// UpsertUser finds or creates the profile for a verified email. New accounts
// get default preferences and a fresh unsubscribe token.
func (s *AccountService) UpsertUser(ctx context.Context, email, name string) (models.UserProfile, error) {
	data, err := s.loadUsers(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	now := time.Now().UTC()
	for i, user := range data.Users {
		if user.Email == email {
			data.Users[i].UpdatedAt = now
			if name != "" {
				data.Users[i].Name = name
			}
			if err := s.saveUsers(ctx, data); err != nil {
				return models.UserProfile{}, err
			}
			return data.Users[i], nil
		}
	}

	user := models.UserProfile{
		ID:               uuid.NewString(),
		Email:            email,
		Name:             name,
		CreatedAt:        now,
		UpdatedAt:        now,
		Preferences:      models.DefaultNotificationPreferences(),
		UnsubscribeToken: uuid.NewString(),
	}
	data.Users = append(data.Users, user)
	if err := s.saveUsers(ctx, data); err != nil {
		return models.UserProfile{}, err
	}
	return user, nil
}

func (s *AccountService) GetPreferences(ctx context.Context, userID string) (models.NotificationPreferences, error) {
	data, err := s.loadUsers(ctx)
	if err != nil {
		return models.NotificationPreferences{}, err
	}
	for _, user := range data.Users {
		if user.ID == userID {
			return user.Preferences, nil
		}
	}
	return models.NotificationPreferences{}, fmt.Errorf("%w: user %q", ErrNotFound, userID)
}

func (s *AccountService) UpdatePreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) error {
	data, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	for i, user := range data.Users {
		if user.ID == userID {
			data.Users[i].Preferences = prefs
			data.Users[i].UpdatedAt = time.Now().UTC()
			return s.saveUsers(ctx, data)
		}
	}
	return fmt.Errorf("%w: user %q", ErrNotFound, userID)
}

// LookupByUnsubscribeToken resolves an unsubscribe link to a profile.
func (s *AccountService) LookupByUnsubscribeToken(ctx context.Context, token string) (models.UserProfile, error) {
	data, err := s.loadUsers(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	for _, user := range data.Users {
		if user.UnsubscribeToken == token {
			return user, nil
		}
	}
	return models.UserProfile{}, fmt.Errorf("%w: unknown unsubscribe token", ErrNotFound)
}

// Unsubscribe turns off every notification preference for the token's owner.
func (s *AccountService) Unsubscribe(ctx context.Context, token string) error {
	data, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	for i, user := range data.Users {
		if user.UnsubscribeToken == token {
			data.Users[i].Preferences = models.NotificationPreferences{}
			data.Users[i].UpdatedAt = time.Now().UTC()
			return s.saveUsers(ctx, data)
		}
	}
	return fmt.Errorf("%w: unknown unsubscribe token", ErrNotFound)
}

// ToggleLike adds or removes the user's like on an item; returns the new
// liked state.
func (s *AccountService) ToggleLike(ctx context.Context, userID, userName, itemID, categoryID string) (bool, error) {
	var data models.LikesData
	if _, err := s.docs.Get(ctx, storage.DocLikes, &data); err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	for i, like := range data.Likes {
		if like.UserID == userID && like.ItemID == itemID {
			data.Likes = append(data.Likes[:i], data.Likes[i+1:]...)
			return false, s.saveLikes(ctx, &data)
		}
	}

	data.Likes = append(data.Likes, models.Like{
		UserID:     userID,
		UserName:   userName,
		ItemID:     itemID,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
	})
	return true, s.saveLikes(ctx, &data)
}

// LikeCounts returns per-item like totals (all items, or one when itemID is
// set) plus the ids the given user has liked.
func (s *AccountService) LikeCounts(ctx context.Context, itemID, userID string) (map[string]int, []string, error) {
	var data models.LikesData
	if _, err := s.docs.Get(ctx, storage.DocLikes, &data); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	counts := map[string]int{}
	userLikes := []string{}
	for _, like := range data.Likes {
		if itemID != "" && like.ItemID != itemID {
			continue
		}
		counts[like.ItemID]++
		if userID != "" && like.UserID == userID {
			userLikes = append(userLikes, like.ItemID)
		}
	}
	return counts, userLikes, nil
}

func (s *AccountService) loadUsers(ctx context.Context) (*models.UsersData, error) {
	var data models.UsersData
	if _, err := s.docs.Get(ctx, storage.DocUsers, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &data, nil
}

func (s *AccountService) saveUsers(ctx context.Context, data *models.UsersData) error {
	data.Stamp()
	if err := s.docs.Set(ctx, storage.DocUsers, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *AccountService) saveLikes(ctx context.Context, data *models.LikesData) error {
	data.Stamp()
	if err := s.docs.Set(ctx, storage.DocLikes, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
