package services

import "log"

// LogMailer writes the magic link to the server log instead of sending mail.
// Useful for development and as the default when no provider is wired up.
type LogMailer struct{}

func (LogMailer) SendMagicLink(email, link string) error {
	log.Printf("mailer: magic link for %s: %s", email, link)
	return nil
}
