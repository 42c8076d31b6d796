package models

import (
	"fmt"
	"time"
)

// NotificationPreferences controls which mailing-list emails a user receives.
type NotificationPreferences struct {
	DailySpecials       bool `json:"dailySpecials"`
	EventsAnnouncements bool `json:"eventsAnnouncements"`
	FeedbackReplies     bool `json:"feedbackReplies"`
}

// DefaultNotificationPreferences opts new accounts into everything.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{DailySpecials: true, EventsAnnouncements: true, FeedbackReplies: true}
}

type UserProfile struct {
	ID               string                  `json:"id"`
	Email            string                  `json:"email"`
	Name             string                  `json:"name,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
	Preferences      NotificationPreferences `json:"notificationPreferences"`
	UnsubscribeToken string                  `json:"unsubscribeToken"`
}

type UsersData struct {
	Users       []UserProfile `json:"users"`
	LastUpdated string        `json:"lastUpdated"`
}

func (u *UsersData) Stamp() { u.LastUpdated = time.Now().UTC().Format(time.RFC3339) }

func (u *UsersData) Validate() error {
	seen := make(map[string]bool, len(u.Users))
	for _, user := range u.Users {
		if user.ID == "" || user.Email == "" {
			return fmt.Errorf("user missing id or email")
		}
		if seen[user.ID] {
			return fmt.Errorf("duplicate user id %q", user.ID)
		}
		seen[user.ID] = true
	}
	return nil
}

// Like records one user liking one menu item.
type Like struct {
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName,omitempty"`
	ItemID     string    `json:"itemId"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LikesData struct {
	Likes       []Like `json:"likes"`
	LastUpdated string `json:"lastUpdated"`
}

func (l *LikesData) Stamp() { l.LastUpdated = time.Now().UTC().Format(time.RFC3339) }

func (l *LikesData) Validate() error {
	for _, like := range l.Likes {
		if like.UserID == "" || like.ItemID == "" {
			return fmt.Errorf("like missing userId or itemId")
		}
	}
	return nil
}
