// Package contact handles the demo inbox and newsletter list. Both
// operations wait out a simulated network delay so the UI gets a
// perceptible pending state; a reload mid-delay silently drops the
// action.
package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"wickandwax/internal/store"
)

var ErrBlankMessage = errors.New("message requires a name, email and body")

const (
	messagesKey   = "contact-messages"
	newsletterKey = "newsletter-subscribers"
)

type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
	SentAt  string `json:"sentAt"`
}

type Service struct {
	store store.Store
	delay time.Duration
}

func NewService(st store.Store, delay time.Duration) *Service {
	return &Service{store: st, delay: delay}
}

// SendMessage appends to the append-only inbox after the simulated
// latency.
func (s *Service) SendMessage(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Body) == "" {
		return ErrBlankMessage
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	msg.SentAt = time.Now().Format(time.RFC3339)
	msgs := []Message{}
	s.store.Get(messagesKey, &msgs)
	return s.store.Set(messagesKey, append(msgs, msg))
}

// SubscribeNewsletter is idempotent per address.
func (s *Service) SubscribeNewsletter(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("email required")
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	subs := []string{}
	s.store.Get(newsletterKey, &subs)
	for _, e := range subs {
		if e == email {
			return nil
		}
	}
	return s.store.Set(newsletterKey, append(subs, email))
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
